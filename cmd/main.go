package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartpan/internal/actuate"
	"smartpan/internal/handlers"
	"smartpan/internal/hardware"
	"smartpan/internal/link"
	"smartpan/internal/logger"
	"smartpan/internal/loop"
	"smartpan/internal/repository"
	"smartpan/internal/sensor"
	"smartpan/internal/server"
	"smartpan/internal/service"
	"smartpan/internal/setpoint"
	"smartpan/internal/syncclient"

	"github.com/spf13/viper"
)

const (
	defaultTargetC   = 50.0
	defaultPeakSimC  = 220.0
	shutdownDeadline = 10 * time.Second
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)

	initialTarget := viper.GetFloat64("target.initial_c")
	if initialTarget == 0 {
		initialTarget = defaultTargetC
	}

	services := service.NewService(repos, initialTarget)
	apiHandler := handlers.NewHandler(services, log)

	ctl := buildControlLoop(repos, services, initialTarget, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the control loop
	go ctl.Run(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "smartpan.db")
		dbPath = "smartpan.db"
	}
	return repository.InitDB(dbPath)
}

// buildControlLoop assembles the sensor, link, sync and actuation stack.
// Hardware is simulated; swapping in real drivers is a matter of providing
// other hardware.Sensor/Actuator/Link implementations here.
func buildControlLoop(repos *repository.Repository, services *service.Service, initialTarget float64, log *logger.Logger) *loop.Loop {
	peakC := viper.GetFloat64("sensor.sim.peak_c")
	if peakC == 0 {
		peakC = defaultPeakSimC
	}
	sens := hardware.NewSimSensor(peakC, viper.GetInt("sensor.sim.fault_every"))
	wl := hardware.NewSimLink(viper.GetInt("link.sim.connect_after"), viper.GetInt("link.sim.drop_every"))
	led := hardware.NewSimActuator()
	buzzer := hardware.NewSimActuator()

	reader := sensor.NewReader(sens)
	monitor := link.NewMonitor(wl, link.Credentials{
		SSID:     viper.GetString("link.ssid"),
		Password: viper.GetString("link.password"),
	}, viper.GetDuration("link.retry_interval"))
	client := syncclient.New(
		viper.GetString("sync.publish_url"),
		viper.GetString("sync.fetch_url"),
		viper.GetDuration("sync.timeout"),
		log,
	)
	targets := setpoint.NewStore(initialTarget)
	exec := actuate.NewExecutor(led, buzzer)

	return loop.New(reader, monitor, client, targets, exec,
		repos.EventRepo, repos.ReadingRepo, services.Monitoring, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	// stop the control loop
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
