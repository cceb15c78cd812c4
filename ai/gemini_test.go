package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubbedAdvisor(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *GeminiAdvisor {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)

	advisor := NewGeminiAdvisor("test-key", "gemini-2.5-flash")
	advisor.baseURL = srv.URL
	return advisor
}

func writeStubResponse(w http.ResponseWriter, text string) {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestGeminiAdvisor_ComposeJournalEntry(t *testing.T) {
	var gotReq generateRequest
	var gotPath string
	advisor := newStubbedAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		writeStubResponse(w, "What a lovely day!")
	})

	text, err := advisor.ComposeJournalEntry(context.Background(), nil, "first steps in the park", "en")
	require.NoError(t, err)
	assert.Equal(t, "What a lovely day!", text)

	assert.Contains(t, gotPath, "/models/gemini-2.5-flash:generateContent")
	assert.Contains(t, gotPath, "key=test-key")

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "first steps in the park")
	assert.NotContains(t, prompt, "describe the photo")
}

func TestGeminiAdvisor_ComposeJournalEntryWithImage(t *testing.T) {
	var gotReq generateRequest
	advisor := newStubbedAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		writeStubResponse(w, "Cute!")
	})

	_, err := advisor.ComposeJournalEntry(context.Background(), []byte("fake image bytes"), "", "en")
	require.NoError(t, err)

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 2)
	assert.NotNil(t, gotReq.Contents[0].Parts[0].InlineData)
	assert.Contains(t, gotReq.Contents[0].Parts[1].Text, "describe the photo")
}

func TestGeminiAdvisor_MilestoneAdviceLanguage(t *testing.T) {
	var gotReq generateRequest
	advisor := newStubbedAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		writeStubResponse(w, "- rolls over")
	})

	text, err := advisor.MilestoneAdvice(context.Background(), 6, "zh")
	require.NoError(t, err)
	assert.Equal(t, "- rolls over", text)

	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "6 months old")
	assert.Contains(t, prompt, `"zh"`)
}

func TestGeminiAdvisor_ErrorStatus(t *testing.T) {
	advisor := newStubbedAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := advisor.MilestoneAdvice(context.Background(), 6, "en")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
}

func TestGeminiAdvisor_NoKey(t *testing.T) {
	advisor := NewGeminiAdvisor("", "gemini-2.5-flash")
	_, err := advisor.ComposeJournalEntry(context.Background(), nil, "ctx", "en")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDisabledAdvisor(t *testing.T) {
	var advisor Advisor = Disabled{}

	_, err := advisor.ComposeJournalEntry(context.Background(), nil, "ctx", "en")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = advisor.MilestoneAdvice(context.Background(), 6, "en")
	assert.ErrorIs(t, err, ErrUnavailable)
}
