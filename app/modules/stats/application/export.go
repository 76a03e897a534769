package statsservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStandings renders one game's standings as an XLSX workbook.
func (s *StatsService) ExportStandings(ctx context.Context, gameID uuid.UUID) (ExportResult, error) {
	return withOperation(s, ctx, "ExportStandings", func(ctx context.Context) (ExportResult, error) {
		board, err := s.repo.GameScoreboard(ctx, s.db, gameID)
		if err != nil {
			return ExportResult{}, err
		}
		standings := buildStandings(board)

		data, err := renderStandingsXLSX(standings)
		if err != nil {
			return ExportResult{}, err
		}
		return ExportResult{
			GameID:      gameID,
			Filename:    fmt.Sprintf("standings-%s.xlsx", gameID),
			ContentType: xlsxContentType,
			Data:        data,
		}, nil
	})
}

func renderStandingsXLSX(standings GameStandingsResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Standings"
	f.SetSheetName("Sheet1", sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &[]any{
		"Rank", "Player", "Total", "Rounds Played", "Unused Tokens",
	}); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range standings.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &[]any{
			row.Rank, row.Player.Name, row.Player.TotalScore, row.Played, row.UnusedTokens,
		}); err != nil {
			return nil, fmt.Errorf("failed to write standings row %d: %w", i+1, err)
		}
	}

	header := fmt.Sprintf("%s (%s)", standings.Game.Name, standings.Game.CreatedAt.Format("2006-01-02"))
	if err := f.SetCellValue(sheetName, "G1", header); err != nil {
		return nil, fmt.Errorf("failed to write game header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
