package display

var openGPIOFn = openGPIO

// OpenGPIO returns a bus bit-banging the MAX7219 interface on p.
func OpenGPIO(p Pins) (Bus, error) {
	return openGPIOFn(p)
}
