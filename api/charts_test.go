package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/services"
)

func TestGenerateChartsHandler(t *testing.T) {
	h, m := newTestHandler()
	r := newTestRouter(h)

	t.Run("returns the captured chart urls", func(t *testing.T) {
		m.capture.On("CaptureAll", "AAPL", []string{"1hr", "4hr", "1d"}).
			Return([]services.ChartResult{
				{Interval: "1hr", Path: "/screenshots/screenshot_AAPL_1hr_1.png"},
				{Interval: "4hr", Path: "/screenshots/screenshot_AAPL_4hr_2.png"},
				{Interval: "1d", Path: "/screenshots/screenshot_AAPL_1d_3.png"},
			}, nil).Once()

		rec := doJSON(t, r, http.MethodPost, "/api/generate-charts", gin.H{"symbol": "AAPL"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			ChartURLs []string `json:"chartUrls"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.ChartURLs, 3)
		assert.Contains(t, resp.ChartURLs[0], "screenshot_AAPL_1hr_")
	})

	t.Run("partial capture failure still returns the successes", func(t *testing.T) {
		m.capture.On("CaptureAll", "TSLA", mock.Anything).
			Return([]services.ChartResult{
				{Interval: "1hr", Path: "/screenshots/screenshot_TSLA_1hr_1.png"},
				{Interval: "4hr", Err: assert.AnError},
				{Interval: "1d", Path: "/screenshots/screenshot_TSLA_1d_2.png"},
			}, nil).Once()

		rec := doJSON(t, r, http.MethodPost, "/api/generate-charts", gin.H{"symbol": "TSLA"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			ChartURLs []string `json:"chartUrls"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.ChartURLs, 2)
	})

	t.Run("total failure is a server error", func(t *testing.T) {
		m.capture.On("CaptureAll", "NVDA", mock.Anything).
			Return([]services.ChartResult{{Interval: "1d", Err: assert.AnError}}, assert.AnError).Once()

		rec := doJSON(t, r, http.MethodPost, "/api/generate-charts", gin.H{"symbol": "NVDA"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing symbol is 400", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/generate-charts", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeChartsHandler(t *testing.T) {
	h, m := newTestHandler()
	r := newTestRouter(h)

	t.Run("streams events as SSE frames", func(t *testing.T) {
		charts := []string{"/screenshots/screenshot_AAPL_1d_1.png"}
		m.turns.On("RunAnalysisTurn", "AAPL", "u1", charts, mock.Anything).
			Run(func(args mock.Arguments) {
				sink := args.Get(3).(services.EventSink)
				require.NoError(t, sink.Send(services.ImagesEvent(charts)))
				require.NoError(t, sink.Send(services.ContentEvent("The trend ")))
				require.NoError(t, sink.Send(services.ContentEvent("is up.")))
				require.NoError(t, sink.Send(services.DoneEvent()))
			}).Return(nil).Once()

		rec := doJSON(t, r, http.MethodPost, "/api/analyze-charts", gin.H{
			"chartUrls": charts, "symbol": "AAPL", "userId": "u1",
		})

		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		// The image URLs travel under the envelope's data key.
		assert.Contains(t, rec.Body.String(), `"data":["/screenshots/screenshot_AAPL_1d_1.png"]`)

		frames := parseSSEFrames(t, rec.Body.String())
		require.Len(t, frames, 4)
		assert.Equal(t, services.EventImages, frames[0].Type)
		imgs, ok := frames[0].Data.([]any)
		require.True(t, ok, "images event carries a URL array in data")
		require.Len(t, imgs, 1)
		assert.Equal(t, charts[0], imgs[0])
		assert.Equal(t, services.EventContent, frames[1].Type)
		assert.Equal(t, "The trend ", frames[1].Data)
		assert.Equal(t, services.EventDone, frames[3].Type)
	})

	t.Run("missing chartUrls array is 400", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/analyze-charts", gin.H{
			"symbol": "AAPL", "userId": "u1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty chartUrls array still reaches the turn service", func(t *testing.T) {
		// Termination with done or error is the turn service's contract;
		// validation must not reject the empty-but-present array.
		m.turns.On("RunAnalysisTurn", "AAPL", "u1", []string{}, mock.Anything).
			Run(func(args mock.Arguments) {
				sink := args.Get(3).(services.EventSink)
				require.NoError(t, sink.Send(services.ErrorEvent("no chart images to analyze")))
			}).Return(assert.AnError).Once()

		rec := doJSON(t, r, http.MethodPost, "/api/analyze-charts", gin.H{
			"chartUrls": []string{}, "symbol": "AAPL", "userId": "u1",
		})

		frames := parseSSEFrames(t, rec.Body.String())
		require.Len(t, frames, 1)
		assert.Equal(t, services.EventError, frames[0].Type)
	})
}

func parseSSEFrames(t *testing.T, body string) []services.Event {
	t.Helper()
	var events []services.Event
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev services.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}
