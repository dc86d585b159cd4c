package ui

import (
	"fmt"

	"snake-autopilot/game"
	"snake-autopilot/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxScores     = 200 // Maximum number of scores to show in graph
	borderPadding = 10
)

var (
	snakeColor = rl.Color{R: 0, G: 228, B: 48, A: 255}
	headColor  = rl.Color{R: 0, G: 158, B: 47, A: 255}
	panelColor = rl.Color{R: 40, G: 40, B: 40, A: 255}
)

var helpLines = []string{
	"Space: start / pause",
	"R: restart",
	"Arrows: steer",
	"A: autopilot",
	"P: lawnmower",
	", / . : slower / faster",
	"Q: quit",
}

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 3
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

// layout fits a size x size grid into the game area, centred.
func (r *Renderer) layout(size int) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.gameHeight - borderPadding*2

	r.cellSize = min(availableWidth/int32(size), availableHeight/int32(size))
	r.totalGridWidth = r.cellSize * int32(size)
	r.totalGridHeight = r.cellSize * int32(size)
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

func (r *Renderer) cell(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

func (r *Renderer) onGrid(p types.Point, size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Draw renders one frame from a session snapshot and the score history.
func (r *Renderer) Draw(st game.State, history []int) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/30, r.statsPanel/14)
	lineHeight := fontSize + fontSize/2

	r.layout(st.Grid.Size)
	r.drawGrid(st)
	r.drawSnake(st)
	if r.onGrid(st.Food, st.Grid.Size) {
		x, y := r.cell(st.Food)
		rl.DrawRectangle(x+2, y+2, r.cellSize-4, r.cellSize-4, rl.Red)
	}
	r.drawStatsPanel(st, history, fontSize, lineHeight)
	r.drawBanner(st, fontSize)

	rl.EndDrawing()
}

func (r *Renderer) drawGrid(st game.State) {
	border := rl.DarkGray
	if st.Grid.Wrap {
		// Dashed-looking border for a borderless board.
		border = rl.Color{R: 60, G: 60, B: 90, A: 255}
	}
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, border)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Black)

	for x := 0; x < st.Grid.Size; x++ {
		for y := 0; y < st.Grid.Size; y++ {
			cx, cy := r.cell(types.Point{X: x, Y: y})
			rl.DrawRectangleLines(cx, cy, r.cellSize, r.cellSize, panelColor)
		}
	}
}

func (r *Renderer) drawSnake(st game.State) {
	for i := len(st.Snake) - 1; i >= 0; i-- {
		p := st.Snake[i]
		if !r.onGrid(p, st.Grid.Size) {
			continue
		}
		x, y := r.cell(p)
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		rl.DrawRectangle(x+1, y+1, r.cellSize-2, r.cellSize-2, color)
		if i == 0 {
			r.drawHeading(x, y, st.Direction)
		}
	}
}

// drawHeading puts a triangle on the head pointing where the snake goes.
func (r *Renderer) drawHeading(headX, headY int32, d types.Direction) {
	half := r.cellSize / 2
	var a, b, c rl.Vector2
	switch d {
	case types.Right:
		a = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + half)}
		b = rl.Vector2{X: float32(headX + half), Y: float32(headY)}
		c = rl.Vector2{X: float32(headX + half), Y: float32(headY + r.cellSize)}
	case types.Left:
		a = rl.Vector2{X: float32(headX), Y: float32(headY + half)}
		b = rl.Vector2{X: float32(headX + half), Y: float32(headY + r.cellSize)}
		c = rl.Vector2{X: float32(headX + half), Y: float32(headY)}
	case types.Down:
		a = rl.Vector2{X: float32(headX + half), Y: float32(headY + r.cellSize)}
		b = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + half)}
		c = rl.Vector2{X: float32(headX), Y: float32(headY + half)}
	case types.Up:
		a = rl.Vector2{X: float32(headX + half), Y: float32(headY)}
		b = rl.Vector2{X: float32(headX), Y: float32(headY + half)}
		c = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + half)}
	default:
		return
	}
	// raylib wants counter-clockwise vertices.
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawStatsPanel(st game.State, history []int, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, panelColor)

	line := func(text string, color rl.Color) {
		rl.DrawText(text, statsX, statsY, fontSize, color)
		statsY += lineHeight
	}

	line(fmt.Sprintf("Score: %d", st.Score), rl.White)
	line(fmt.Sprintf("High Score: %d", st.HighScore), rl.White)
	line(fmt.Sprintf("Length: %d", len(st.Snake)), rl.LightGray)

	statusColor := rl.Gray
	if st.Mode != types.Off {
		statusColor = rl.Green
	}
	line(st.Status, statusColor)
	if st.Mode == types.Coverage {
		line(fmt.Sprintf("Lap %d  row %d  escapes %d", st.Cursor.Lap, st.Cursor.Row, st.Cursor.Escapes), rl.LightGray)
	}
	line(fmt.Sprintf("Speed: %d/%d (%v)", st.SpeedIndex+1, len(types.SpeedLevels), st.Speed), rl.LightGray)

	statsY += lineHeight / 2
	for _, h := range helpLines {
		line(h, rl.Gray)
	}

	r.drawScoreGraph(history, statsX, fontSize)
}

func (r *Renderer) drawScoreGraph(history []int, graphX, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)
	rl.DrawText(fmt.Sprintf("Games: %d", len(history)), graphX, r.screenHeight-fontSize-5, fontSize, rl.White)

	if len(history) > maxScores {
		history = history[len(history)-maxScores:]
	}
	if len(history) < 2 {
		return
	}

	maxScore, total := 1, 0
	for _, s := range history {
		maxScore = max(maxScore, s)
		total += s
	}
	avg := float32(total) / float32(len(history))

	scale := func(i, score int) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores))
		y := graphY + graphHeight - int32(float32(graphHeight)*float32(score)/float32(maxScore))
		return x, y
	}
	for j := 1; j < len(history); j++ {
		x1, y1 := scale(j-1, history[j-1])
		x2, y2 := scale(j, history[j])
		rl.DrawLine(x1, y1, x2, y2, snakeColor)
	}

	avgY := graphY + graphHeight - int32(float32(graphHeight)*avg/float32(maxScore))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

// drawBanner shows the idle, paused, game over and win messages over the grid.
func (r *Renderer) drawBanner(st game.State, fontSize int32) {
	var text string
	color := rl.White
	switch {
	case st.Won:
		text = fmt.Sprintf("YOU WIN! Final score: %d", st.Score)
		color = rl.Gold
	case st.Over:
		text = fmt.Sprintf("Game Over! Your score: %d", st.Score)
		color = rl.Red
	case st.Paused:
		text = "Paused"
	case !st.Running:
		text = "Press Space to start"
	default:
		return
	}
	size := fontSize * 3 / 2
	width := rl.MeasureText(text, size)
	rl.DrawText(text, r.offsetX+(r.totalGridWidth-width)/2, r.offsetY+r.totalGridHeight/2-size/2, size, color)
}
