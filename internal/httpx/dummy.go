// Package httpx – dummy-request padding.
//
// Clients periodically send dummy requests so that traffic analysis cannot
// distinguish a real upload from background noise. A dummy request is
// flagged by a header, must take a similar amount of time as a real one,
// and is answered with a canned response drawn at random from a weighted
// set. The padding sleep also slows down brute-force probing of the real
// endpoints.
package httpx

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/averna/go-exposure-backend/internal/monitoring"
	"github.com/averna/go-exposure-backend/internal/utils"
)

// DummyDataHeader flags a request as dummy traffic. The value is an
// integer bool: "1"/"true" mark the request as dummy, anything else as
// real.
const DummyDataHeader = "X-Dummy-Data"

// CannedResponse is one possible answer to a dummy request.
type CannedResponse struct {
	Status int
	Body   any
}

// DummyPolicy configures how dummy requests are padded and answered.
//
// Fields:
//   - Mean / Sigma: the padding sleep is drawn from a normal distribution
//     with these parameters, floored at zero, to mimic the latency
//     spread of real requests.
//   - Responses: weighted canned responses; the weights mirror the
//     status distribution of the real endpoint.
//   - SleepFn: overridable sleep, for tests. Defaults to time.Sleep.
type DummyPolicy struct {
	Mean      time.Duration
	Sigma     time.Duration
	Responses []utils.Weighted[CannedResponse]
	SleepFn   func(time.Duration)
}

// IsDummy reports whether the request is flagged as dummy traffic.
func IsDummy(c *gin.Context) bool {
	switch c.GetHeader(DummyDataHeader) {
	case "1", "true":
		return true
	}
	return false
}

// Wait sleeps for the configured, normally distributed padding time.
func (p DummyPolicy) Wait() {
	sleep := p.SleepFn
	if sleep == nil {
		sleep = time.Sleep
	}
	d := time.Duration(rand.NormFloat64()*float64(p.Sigma) + float64(p.Mean))
	if d < 0 {
		d = 0
	}
	sleep(d)
}

// Guard wraps a handler so that dummy requests never reach it: they are
// padded with Wait and answered with a weighted-random canned response,
// while real requests pass straight through.
func (p DummyPolicy) Guard(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsDummy(c) {
			next(c)
			return
		}
		p.Wait()
		monitoring.DummyRequests.Inc()
		resp := utils.WeightedRandom(p.Responses)
		if resp.Status == 0 {
			resp.Status = 200
		}
		JSON(c, resp.Status, resp.Body)
	}
}
