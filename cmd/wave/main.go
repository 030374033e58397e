package main

import (
	"math"
	"time"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
	"github.com/quintinfsmith/wrecked-sub000/terminal"
)

func main() {
	c, err := wrecked.New(terminal.New())
	if err != nil {
		return
	}
	defer c.Kill()

	width, height, _ := c.RootSize()
	if width == 0 {
		return
	}

	points := make([]wrecked.Handle, width)
	for x := 0; x < width; x++ {
		h, err := c.NewRect(wrecked.Root)
		if err != nil {
			return
		}
		c.Resize(h, 1, 1)
		c.SetBgColor(h, wrecked.Yellow)
		c.SetCharacter(h, 0, 0, ' ')
		points[x] = h
	}
	c.RenderRoot()

	amplitude := float64(height) / 3
	midline := float64(height) / 2

	for x := 0; x < width*width; x++ {
		rectID := points[x%width]
		phase := 2 * math.Pi * float64(x%width) / float64(width-1)
		y := int(midline + math.Sin(phase)*amplitude)
		c.SetPosition(rectID, x%width, y)
		c.RenderRoot()
		time.Sleep(50 * time.Microsecond)
	}

	for _, h := range points {
		c.SetBgColor(h, wrecked.Blue)
	}

	for x := 0; x < width*width; x++ {
		rectID := points[x%width]
		phase := 2 * math.Pi * float64(x%width) / float64(width-1)
		y := int(midline + math.Sin(phase)*amplitude)
		c.SetPosition(rectID, x%width, y)
		c.RenderRoot()
		time.Sleep(50 * time.Microsecond)
	}

	time.Sleep(time.Second)
}
