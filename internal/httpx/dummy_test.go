package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/averna/go-exposure-backend/internal/utils"
)

func TestIsDummy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"yes", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.value != "" {
			c.Request.Header.Set(DummyDataHeader, tc.value)
		}
		if got := IsDummy(c); got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestGuard_PassesRealRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	policy := DummyPolicy{
		SleepFn: func(time.Duration) { t.Fatal("real request must not sleep") },
	}
	r := gin.New()
	r.GET("/batch", policy.Guard(func(c *gin.Context) {
		JSON(c, http.StatusOK, gin.H{"index": 3})
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batch", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["index"] != 3 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGuard_AnswersDummyWithoutHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	slept := false
	policy := DummyPolicy{
		Mean:    50 * time.Millisecond,
		Sigma:   10 * time.Millisecond,
		SleepFn: func(d time.Duration) { slept = true },
		Responses: []utils.Weighted[CannedResponse]{
			{Payload: CannedResponse{Status: http.StatusNoContent}, Weight: 1},
		},
	}
	reached := false
	r := gin.New()
	r.POST("/upload", policy.Guard(func(c *gin.Context) {
		reached = true
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set(DummyDataHeader, "1")
	r.ServeHTTP(w, req)

	if reached {
		t.Fatal("dummy request reached the real handler")
	}
	if !slept {
		t.Fatal("dummy request skipped the padding sleep")
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGuard_WeightedResponseSelection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	policy := DummyPolicy{
		SleepFn: func(time.Duration) {},
		Responses: []utils.Weighted[CannedResponse]{
			{Payload: CannedResponse{Status: http.StatusOK, Body: gin.H{"dummy": true}}, Weight: 1},
			{Payload: CannedResponse{Status: http.StatusBadRequest}, Weight: 0},
		},
	}
	r := gin.New()
	r.GET("/batch", policy.Guard(func(c *gin.Context) {
		t.Fatal("dummy request reached the real handler")
	}))

	// the zero-weight entry must never be chosen
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/batch", nil)
		req.Header.Set(DummyDataHeader, "true")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("iteration %d: status=%d", i, w.Code)
		}
	}
}

func TestWait_NeverNegative(t *testing.T) {
	var got time.Duration
	policy := DummyPolicy{
		Mean:    time.Millisecond,
		Sigma:   time.Hour, // wide spread forces negative draws
		SleepFn: func(d time.Duration) { got = d },
	}
	for i := 0; i < 100; i++ {
		policy.Wait()
		if got < 0 {
			t.Fatalf("negative sleep: %v", got)
		}
	}
}
