package trivia

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/xuri/excelize/v2"

	"trivia-bot/internal/game"
	"trivia-bot/internal/security"
	apperrors "trivia-bot/pkg/errors"
)

// ExcelBank serves questions from a local spreadsheet, for running the bot
// without internet access. One sheet per category; columns are question,
// four options, the number of the correct option (1-4) and a difficulty.
type ExcelBank struct {
	byCategory map[string][]bankEntry
}

type bankEntry struct {
	question   game.Question
	difficulty string
}

// NewExcelBank loads every sheet of the workbook into memory.
func NewExcelBank(path string) (*ExcelBank, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeQuestionSource, "failed to open question bank")
	}
	defer f.Close()

	bank := &ExcelBank{byCategory: make(map[string][]bankEntry)}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeQuestionSource,
				fmt.Sprintf("failed to read sheet %q", sheet))
		}

		category := strings.ToLower(strings.TrimSpace(sheet))
		for i, row := range rows {
			if i == 0 { // header
				continue
			}
			entry, ok := parseRow(row)
			if !ok {
				continue
			}
			bank.byCategory[category] = append(bank.byCategory[category], entry)
		}
	}

	return bank, nil
}

func parseRow(row []string) (bankEntry, bool) {
	if len(row) < 6 {
		return bankEntry{}, false
	}

	text := security.CleanText(row[0])
	options := []string{
		security.CleanText(row[1]),
		security.CleanText(row[2]),
		security.CleanText(row[3]),
		security.CleanText(row[4]),
	}
	if text == "" {
		return bankEntry{}, false
	}

	var answer string
	switch strings.TrimSpace(row[5]) {
	case "1":
		answer = options[0]
	case "2":
		answer = options[1]
	case "3":
		answer = options[2]
	case "4":
		answer = options[3]
	default:
		return bankEntry{}, false
	}

	difficulty := game.DifficultyEasy
	if len(row) > 6 {
		difficulty = strings.ToLower(strings.TrimSpace(row[6]))
	}

	return bankEntry{
		question:   game.Question{Text: text, Choices: options, Answer: answer},
		difficulty: difficulty,
	}, true
}

// Fetch implements game.QuestionSource with a random draw from the bank.
// The type filter is ignored: a spreadsheet bank is multiple-choice only.
func (b *ExcelBank) Fetch(_ context.Context, req game.FetchRequest) ([]game.Question, error) {
	var pool []bankEntry
	if req.Category != "" {
		pool = b.byCategory[strings.ToLower(req.Category)]
	} else {
		for _, entries := range b.byCategory {
			pool = append(pool, entries...)
		}
	}

	var matched []game.Question
	for _, entry := range pool {
		if req.Difficulty != "" && entry.difficulty != req.Difficulty {
			continue
		}
		matched = append(matched, entry.question)
	}

	if len(matched) < req.Amount {
		return nil, apperrors.New(apperrors.ErrCodeNoResults, "not enough questions for those filters")
	}

	rand.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})
	return matched[:req.Amount], nil
}
