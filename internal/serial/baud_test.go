package serial

import "testing"

func TestSupported(t *testing.T) {
	for _, b := range SupportedBauds {
		if !Supported(b) {
			t.Fatalf("Supported(%d)=false", b)
		}
	}
	for _, b := range []int{0, -9600, 1200, 230400} {
		if Supported(b) {
			t.Fatalf("Supported(%d)=true", b)
		}
	}
}
