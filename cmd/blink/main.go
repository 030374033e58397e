package main

import (
	"fmt"
	"os"
	"time"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
	"github.com/quintinfsmith/wrecked-sub000/terminal"
)

func main() {
	c, err := wrecked.New(terminal.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, "blink:", err)
		os.Exit(1)
	}

	width, height, _ := c.RootSize()
	blinker, err := c.NewRect(wrecked.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "blink:", err)
		c.Kill()
		os.Exit(1)
	}

	c.SetFgColor(blinker, wrecked.Red)
	c.SetBgColor(blinker, wrecked.White)
	c.Resize(blinker, width/2, height/2)
	c.SetPosition(blinker, width/4, height/4)
	c.SetString(blinker, width/4-3, 2, "BLINK!")

	for i := 0; i < 54; i++ {
		if i%2 == 0 {
			c.Disable(blinker)
		} else {
			c.Enable(blinker)
		}
		c.RenderRoot()
		time.Sleep(100 * time.Millisecond)
	}

	c.Kill()
}
