package statsservice

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
)

const chartContentType = "image/png"

// seriesPalette cycles across players.
var seriesPalette = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// ProgressionChart renders a PNG line chart of every player's running total
// over the course of one game.
func (s *StatsService) ProgressionChart(ctx context.Context, gameID uuid.UUID) (ChartResult, error) {
	return withOperation(s, ctx, "ProgressionChart", func(ctx context.Context) (ChartResult, error) {
		board, err := s.repo.GameScoreboard(ctx, s.db, gameID)
		if err != nil {
			return ChartResult{}, err
		}
		png, err := renderProgressionChart(board)
		if err != nil {
			return ChartResult{}, err
		}
		return ChartResult{
			GameID:      gameID,
			ContentType: chartContentType,
			PNG:         png,
		}, nil
	})
}

func renderProgressionChart(board *statsdb.Scoreboard) ([]byte, error) {
	entriesByPlayer := make(map[uuid.UUID][]ledgerdomain.ScoreEntry)
	for _, e := range board.Entries {
		entriesByPlayer[e.PlayerID] = append(entriesByPlayer[e.PlayerID], e)
	}

	var series []chart.Series
	for i, p := range board.Players {
		entries := entriesByPlayer[p.ID]
		if len(entries) == 0 {
			continue
		}
		totals := ledgerdomain.RunningTotals(entries)

		// Anchor every line at zero when the game started so single-entry
		// players still draw a segment.
		xValues := make([]time.Time, 0, len(entries)+1)
		yValues := make([]float64, 0, len(entries)+1)
		xValues = append(xValues, board.Game.CreatedAt)
		yValues = append(yValues, 0)
		for j, e := range entries {
			xValues = append(xValues, e.CreatedAt)
			yValues = append(yValues, float64(totals[j]))
		}

		color := seriesPalette[i%len(seriesPalette)]
		series = append(series, chart.TimeSeries{
			Name:    p.Name,
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}

	if len(series) == 0 {
		return renderNoScoresPlaceholder(board.Game.Name)
	}

	graph := chart.Chart{
		Title:  board.Game.Name,
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Total",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoScoresPlaceholder(gameName string) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores recorded yet"
	)

	graph := chart.Chart{
		Title:  gameName,
		Width:  width,
		Height: height,
		// The renderer wants at least one visible series; a transparent
		// two-point line satisfies it without drawing anything.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotWidth:    -1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
