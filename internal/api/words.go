package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/vocab"
)

type wordBody struct {
	ID      vocab.ID `json:"id,omitempty"`
	English string   `json:"english"`
	Uzbek   string   `json:"uzbek"`
}

func (w wordBody) entry() vocab.WordEntry {
	return vocab.WordEntry{ID: w.ID, English: w.English, Uzbek: w.Uzbek}
}

type pageBody struct {
	Results []wordBody `json:"results"`
	Count   *int       `json:"count"`
}

// ListWords fetches one page of the word list. Pages are 1-based. A bare
// JSON array is taken as the whole, unpaginated list.
func (c *Client) ListWords(ctx context.Context, page int) (corpus.Page, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}

	var raw json.RawMessage
	if err := c.do(ctx, OpListWords, http.MethodGet, "/words", query, nil, &raw, wordPageSchema); err != nil {
		return corpus.Page{}, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []wordBody
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return corpus.Page{}, fmt.Errorf("%s: %w: %v", OpListWords, ErrMalformedResponse, err)
		}
		return corpus.Page{Items: entries(items), Count: len(items)}, nil
	}

	var body pageBody
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return corpus.Page{}, fmt.Errorf("%s: %w: %v", OpListWords, ErrMalformedResponse, err)
	}
	count := len(body.Results)
	if body.Count != nil {
		count = *body.Count
	}
	return corpus.Page{Items: entries(body.Results), Count: count, Paginated: true}, nil
}

// CreateWord adds a word and returns it as stored.
func (c *Client) CreateWord(ctx context.Context, in vocab.WordInput) (vocab.WordEntry, error) {
	var out wordBody
	body := wordBody{English: in.English, Uzbek: in.Uzbek}
	if err := c.do(ctx, OpCreateWord, http.MethodPost, "/words", nil, body, &out, wordSchema); err != nil {
		return vocab.WordEntry{}, err
	}
	return out.entry(), nil
}

// UpdateWord replaces both fields of the word with the given id.
func (c *Client) UpdateWord(ctx context.Context, id vocab.ID, in vocab.WordInput) (vocab.WordEntry, error) {
	var out wordBody
	body := wordBody{English: in.English, Uzbek: in.Uzbek}
	if err := c.do(ctx, OpUpdateWord, http.MethodPatch, wordPath(id), nil, body, &out, wordSchema); err != nil {
		return vocab.WordEntry{}, err
	}
	return out.entry(), nil
}

// DeleteWord removes the word with the given id.
func (c *Client) DeleteWord(ctx context.Context, id vocab.ID) error {
	return c.do(ctx, OpDeleteWord, http.MethodDelete, wordPath(id), nil, nil, nil, nil)
}

func wordPath(id vocab.ID) string {
	return "/words/" + url.PathEscape(id.String())
}

func entries(items []wordBody) []vocab.WordEntry {
	out := make([]vocab.WordEntry, 0, len(items))
	for _, it := range items {
		out = append(out, it.entry())
	}
	return out
}
