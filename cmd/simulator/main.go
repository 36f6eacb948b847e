package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sambathreasmey/library-management-system/pkg/worker"
)

// The simulator is a standalone binary that drives synthetic booking
// traffic against a running API instance: it logs in, books random
// transactions through the form endpoints and polls the listing
// tables, while exposing a small control API to steer the load.

type bookingJob struct {
	Amount     float64
	Currency   string
	CustomerID int64
	BankID     int64
	GameID     int64
}

type Simulator struct {
	target      string
	username    string
	password    string
	rate        atomic.Int64 // bookings per minute
	booked      atomic.Int64
	failed      atomic.Int64
	accessToken atomic.Value // string
	client      *http.Client
	rng         *rand.Rand
	simulatorID string
}

func NewSimulator(target, username, password string, ratePerMinute int64) *Simulator {
	s := &Simulator{
		target:      target,
		username:    username,
		password:    password,
		client:      &http.Client{Timeout: 10 * time.Second},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		simulatorID: "SIM_" + uuid.New().String()[:8],
	}
	s.rate.Store(ratePerMinute)
	s.accessToken.Store("")
	return s
}

// login authenticates against the JSON login endpoint and keeps the
// bearer token for the workers.
func (s *Simulator) login(ctx context.Context) error {
	payload, _ := json.Marshal(map[string]string{
		"username": s.username,
		"password": s.password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.target+"/auth/login-json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	s.accessToken.Store(body.AccessToken)
	log.Info().Str("simulator_id", s.simulatorID).Msg("Logged in")
	return nil
}

// book submits one synthetic transaction through the booking form.
func (s *Simulator) book(job bookingJob) error {
	form := url.Values{}
	form.Set("amount", strconv.FormatFloat(job.Amount, 'f', 2, 64))
	form.Set("currency", job.Currency)
	form.Set("bank_stor", "main")
	form.Set("type", "1")
	form.Set("customer_id", strconv.FormatInt(job.CustomerID, 10))
	form.Set("bank_id", strconv.FormatInt(job.BankID, 10))
	form.Set("game_id", strconv.FormatInt(job.GameID, 10))

	req, err := http.NewRequest(http.MethodPost, s.target+"/manage/transactions/create", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken.Load().(string))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := s.login(context.Background()); err != nil {
			return err
		}
		return fmt.Errorf("session expired, re-logged in")
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("booking returned %d", resp.StatusCode)
	}
	return nil
}

func (s *Simulator) randomJob() bookingJob {
	currencies := []string{"USD", "EUR", "KHR"}
	return bookingJob{
		Amount:     float64(s.rng.Intn(100000)) / 100,
		Currency:   currencies[s.rng.Intn(len(currencies))],
		CustomerID: int64(s.rng.Intn(5) + 1),
		BankID:     int64(s.rng.Intn(3) + 1),
		GameID:     int64(s.rng.Intn(3) + 1),
	}
}

type controlAPI struct {
	sim *Simulator
}

func (c *controlAPI) health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"simulator_id": c.sim.simulatorID,
		"timestamp":    time.Now(),
		"rate_per_min": c.sim.rate.Load(),
	})
}

func (c *controlAPI) stats(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{
		"booked": c.sim.booked.Load(),
		"failed": c.sim.failed.Load(),
	})
}

func (c *controlAPI) updateConfig(g *gin.Context) {
	var cfg struct {
		RatePerMinute *int64 `json:"rate_per_minute"`
	}
	if err := g.ShouldBindJSON(&cfg); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if cfg.RatePerMinute != nil && *cfg.RatePerMinute >= 0 {
		c.sim.rate.Store(*cfg.RatePerMinute)
		log.Info().Int64("rate_per_minute", *cfg.RatePerMinute).Msg("Updated booking rate")
	}

	g.JSON(http.StatusOK, gin.H{"rate_per_minute": c.sim.rate.Load()})
}

func setupRouter(api *controlAPI) *gin.Engine {
	router := gin.Default()

	router.Use(func(g *gin.Context) {
		start := time.Now()
		g.Next()
		log.Info().
			Str("method", g.Request.Method).
			Str("path", g.Request.URL.Path).
			Int("status", g.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", api.health)
		v1.GET("/stats", api.stats)
		v1.PUT("/config", api.updateConfig)
	}
	router.GET("/health", api.health)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8082")
	target := getEnv("TARGET_URL", "http://localhost:8080")
	username := getEnv("SIM_USERNAME", "admin")
	password := getEnv("SIM_PASSWORD", "admin123")
	rate := getEnvInt64("RATE_PER_MINUTE", 60)
	workers := int(getEnvInt64("WORKERS", 4))

	log.Info().
		Str("port", port).
		Str("target", target).
		Int64("rate_per_minute", rate).
		Int("workers", workers).
		Msg("Starting booking simulator")

	sim := NewSimulator(target, username, password, rate)
	if err := sim.login(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to log in to target")
	}

	// worker pool drains the booking jobs concurrently
	pool := worker.NewWorkerManager(1024, workers, nil)
	pool.SetWorker(func(workerIndex int, job interface{}) {
		b, ok := job.(bookingJob)
		if !ok {
			return
		}
		if err := sim.book(b); err != nil {
			sim.failed.Add(1)
			log.Warn().Err(err).Int("worker", workerIndex).Msg("Booking failed")
			return
		}
		sim.booked.Add(1)
	})
	go func() {
		// Start blocks until the workers are told to exit
		if err := pool.Start(); err != nil {
			log.Info().Err(err).Msg("Worker pool stopped")
		}
	}()

	// producer paces job submission to the configured rate
	stop := make(chan struct{})
	go func() {
		for {
			rate := sim.rate.Load()
			if rate <= 0 {
				select {
				case <-stop:
					return
				case <-time.After(time.Second):
				}
				continue
			}
			select {
			case <-stop:
				return
			case <-time.After(time.Minute / time.Duration(rate)):
				pool.Enqueue(sim.randomJob())
			}
		}
	}()

	api := &controlAPI{sim: sim}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      setupRouter(api),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Control API started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down simulator...")
	close(stop)
	pool.Exit()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Simulator exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
