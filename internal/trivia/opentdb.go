package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trivia-bot/internal/game"
	"trivia-bot/internal/security"
	apperrors "trivia-bot/pkg/errors"
)

const DefaultBaseURL = "https://opentdb.com/api.php"

// Open Trivia Database response codes.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimited   = 5
)

// Categories maps the bot's category names to OpenTDB category IDs.
var Categories = map[string]int{
	"general":   9,
	"books":     10,
	"film":      11,
	"music":     12,
	"science":   17,
	"computers": 18,
	"math":      19,
	"sports":    21,
	"geography": 22,
	"history":   23,
	"animals":   27,
}

// Client fetches questions from the Open Trivia Database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []apiQuestion `json:"results"`
}

type apiQuestion struct {
	Type             string   `json:"type"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch implements game.QuestionSource against the OpenTDB HTTP API.
func (c *Client) Fetch(ctx context.Context, req game.FetchRequest) ([]game.Question, error) {
	endpoint, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to build trivia request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeQuestionSource, "trivia API unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeQuestionSource,
			fmt.Sprintf("trivia API returned status %d", resp.StatusCode))
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeQuestionSource, "failed to decode trivia response")
	}

	switch body.ResponseCode {
	case codeSuccess:
	case codeNoResults:
		return nil, apperrors.New(apperrors.ErrCodeNoResults, "not enough questions for those filters")
	case codeRateLimited:
		return nil, apperrors.New(apperrors.ErrCodeRateLimited, "trivia API rate limit hit")
	case codeInvalidParam, codeTokenNotFound, codeTokenEmpty:
		return nil, apperrors.New(apperrors.ErrCodeQuestionSource,
			fmt.Sprintf("trivia API rejected the request (code %d)", body.ResponseCode))
	default:
		return nil, apperrors.New(apperrors.ErrCodeQuestionSource,
			fmt.Sprintf("unknown trivia API response code %d", body.ResponseCode))
	}

	questions := make([]game.Question, 0, len(body.Results))
	for _, result := range body.Results {
		questions = append(questions, result.toQuestion())
	}
	return questions, nil
}

func (c *Client) buildURL(req game.FetchRequest) (string, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(req.Amount))

	if req.Category != "" {
		id, ok := Categories[req.Category]
		if !ok {
			return "", apperrors.New(apperrors.ErrCodeValidation,
				fmt.Sprintf("unknown category %q", req.Category))
		}
		params.Set("category", strconv.Itoa(id))
	}
	if req.Difficulty != "" {
		params.Set("difficulty", req.Difficulty)
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}

	return c.baseURL + "?" + params.Encode(), nil
}

func (q apiQuestion) toQuestion() game.Question {
	answer := security.CleanText(q.CorrectAnswer)

	var choices []string
	if q.Type == game.TypeBoolean {
		choices = []string{"True", "False"}
	} else {
		choices = make([]string, 0, len(q.IncorrectAnswers)+1)
		for _, incorrect := range q.IncorrectAnswers {
			choices = append(choices, security.CleanText(incorrect))
		}
		choices = append(choices, answer)
		rand.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
	}

	return game.Question{
		Text:    security.CleanText(q.Question),
		Choices: choices,
		Answer:  answer,
	}
}
