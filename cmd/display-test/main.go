package main

import (
	"fmt"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/display"
)

func main() {
	s, err := display.NewScreen()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer s.Close()

	err = s.Show([]string{
		"MELODY-IMPROV",
		"mode: Pattern",
		"sound: on",
		"(press to switch)",
	})
	if err != nil {
		fmt.Printf("draw error: %v\n", err)
		return
	}

	time.Sleep(5 * time.Second)
}
