package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
)

// prints the level of a button every 50ms, 0 while pressed
func main() {
	base := flag.String("base", gpio.Base, "sysfs gpio directory")
	pin := flag.String("pin", "19", "gpio number of the button")
	periph := flag.Bool("periph", false, "open the pin through periph instead of sysfs")
	flag.Parse()

	var in gpio.Reader
	if *periph {
		p, err := gpio.OpenPeriph(*pin)
		if err != nil {
			fmt.Printf("input err: %v\n", err)
			os.Exit(1)
		}
		in = p
	} else {
		p := gpio.NewPin(*base, *pin)
		if err := p.Setup(); err != nil {
			fmt.Printf("input err: %v\n", err)
			os.Exit(1)
		}
		in = p
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case s := <-c:
			fmt.Println("Got signal:", s)
			return
		case <-t.C:
			if in.Read() == gpio.Low {
				fmt.Println(0)
			} else {
				fmt.Println(1)
			}
		}
	}
}
