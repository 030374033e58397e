// circle draws a filled circle in the middle of the terminal and holds
// it on screen briefly before exiting.
package main

import (
	"math"
	"time"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
	"github.com/quintinfsmith/wrecked-sub000/terminal"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func main() {
	c, err := wrecked.New(terminal.New())
	if err != nil {
		return
	}
	defer c.Kill()

	width, height, _ := c.RootSize()
	cx, cy := width/2, height/2
	radius := min(cx, cy) / 2

	rect, err := c.NewRect(wrecked.Root)
	if err != nil {
		return
	}
	c.Resize(rect, radius*2, radius*2)
	c.SetPosition(rect, cx-radius, cy-radius)
	c.SetFgColor(rect, wrecked.Blue)

	const circleChar = '\\'
	for x := 0; x < radius; x++ {
		yLen := int(math.Sqrt(float64(radius*radius - x*x)))
		for y := 0; y < yLen; y++ {
			c.SetCharacter(rect, radius+x, radius-yLen+y, circleChar)
			c.SetCharacter(rect, radius-x, radius-yLen+y, circleChar)
			c.SetCharacter(rect, radius+x, radius+y, circleChar)
			c.SetCharacter(rect, radius-x, radius+y, circleChar)
		}
	}

	c.RenderRoot()
	time.Sleep(3 * time.Second)
}
