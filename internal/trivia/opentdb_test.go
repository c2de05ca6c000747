package trivia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"trivia-bot/internal/game"
	apperrors "trivia-bot/pkg/errors"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"response_code": 0,
			"results": [
				{
					"type": "boolean",
					"difficulty": "easy",
					"category": "Science: Computers",
					"question": "The HTML5 standard was published in 2014.",
					"correct_answer": "True",
					"incorrect_answers": ["False"]
				},
				{
					"type": "multiple",
					"difficulty": "easy",
					"category": "Science: Computers",
					"question": "What does &quot;CPU&quot; stand for?",
					"correct_answer": "Central Processing Unit",
					"incorrect_answers": ["Central Process Unit", "Computer Personal Unit", "Central Processor Unit"]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	questions, err := client.Fetch(context.Background(), game.FetchRequest{
		Amount:     2,
		Category:   "computers",
		Difficulty: game.DifficultyEasy,
		Type:       game.TypeBoolean,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("Fetch() returned %d questions, want 2", len(questions))
	}

	if got := gotQuery["amount"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("amount param = %v, want [2]", got)
	}
	if got := gotQuery["category"]; len(got) != 1 || got[0] != "18" {
		t.Errorf("category param = %v, want [18]", got)
	}
	if got := gotQuery["difficulty"]; len(got) != 1 || got[0] != "easy" {
		t.Errorf("difficulty param = %v, want [easy]", got)
	}

	boolean := questions[0]
	if boolean.Text != "The HTML5 standard was published in 2014." {
		t.Errorf("boolean question text = %q", boolean.Text)
	}
	if len(boolean.Choices) != 2 || boolean.Choices[0] != "True" || boolean.Choices[1] != "False" {
		t.Errorf("boolean choices = %v, want [True False]", boolean.Choices)
	}
	if boolean.Answer != "True" {
		t.Errorf("boolean answer = %q, want True", boolean.Answer)
	}

	multiple := questions[1]
	if multiple.Text != `What does "CPU" stand for?` {
		t.Errorf("entities not decoded: question text = %q", multiple.Text)
	}
	if len(multiple.Choices) != 4 {
		t.Fatalf("multiple choices = %v, want 4 entries", multiple.Choices)
	}
	found := false
	for _, choice := range multiple.Choices {
		if choice == multiple.Answer {
			found = true
		}
	}
	if !found {
		t.Errorf("answer %q not among choices %v", multiple.Answer, multiple.Choices)
	}
}

func TestClient_Fetch_ResponseCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantCode string
	}{
		{name: "No results", code: 1, wantCode: apperrors.ErrCodeNoResults},
		{name: "Invalid parameter", code: 2, wantCode: apperrors.ErrCodeQuestionSource},
		{name: "Rate limited", code: 5, wantCode: apperrors.ErrCodeRateLimited},
		{name: "Unknown code", code: 9, wantCode: apperrors.ErrCodeQuestionSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"response_code": ` + strconv.Itoa(tt.code) + `, "results": []}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			_, err := client.Fetch(context.Background(), game.FetchRequest{Amount: 5})
			if err == nil {
				t.Fatal("Fetch() error = nil, want error")
			}

			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Fetch() error = %v, want *AppError", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), game.FetchRequest{Amount: 5})
	if err == nil {
		t.Fatal("Fetch() error = nil, want error")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeQuestionSource {
		t.Errorf("Fetch() error = %v, want QUESTION_SOURCE_ERROR", err)
	}
}

func TestClient_Fetch_UnknownCategory(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), game.FetchRequest{Amount: 5, Category: "astrology"})

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeValidation {
		t.Errorf("Fetch() error = %v, want VALIDATION_ERROR", err)
	}
	if called {
		t.Error("unknown category still hit the API")
	}
}
