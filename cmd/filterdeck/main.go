package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	rtdebug "runtime/debug"
	"syscall"
	"time"

	"filterdeck/internal/controllers"
	"filterdeck/internal/cv/memory"
	"filterdeck/internal/export"
	"filterdeck/internal/logger"
	"filterdeck/internal/models"
	"filterdeck/internal/pipeline"
	"filterdeck/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "FilterDeck"
	AppID      = "com.imageprocessing.filterdeck"
	AppVersion = "1.0.0"
)

// Application bundles the wired components and their lifecycle.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView

	coordinator   *pipeline.Coordinator
	exporter      *export.Exporter
	imageStore    *models.ImageStore
	session       *models.Session
	memoryManager *memory.Manager

	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	configureRuntime()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := NewApplication(ctx)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	setupGracefulShutdown(application, cancel)

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}

	log.Println("Application terminated successfully")
}

// configureRuntime tunes the Go runtime for image processing workloads.
func configureRuntime() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Large transient pixel buffers; collect less eagerly.
	rtdebug.SetGCPercent(200)

	if os.Getenv("GOMEMLIMIT") == "" {
		os.Setenv("GOMEMLIMIT", "4GiB")
	}
}

// NewApplication creates and wires all components.
func NewApplication(ctx context.Context) (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1200, 720))
	window.CenterOnScreen()

	appCtx, appCancel := context.WithCancel(ctx)

	appLogger := logger.FromEnv()
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
	})

	memManager := memory.NewManager(appLogger)
	imageStore := models.NewImageStore()
	session := models.NewSession()
	coordinator := pipeline.NewCoordinator(memManager, appLogger, imageStore, session)
	exporter := export.NewExporter(appLogger)

	mainController := controllers.NewMainController(appCtx, coordinator, session, exporter, appLogger)
	mainView := views.NewMainView(window)
	mainController.SetMainView(mainView)

	application := &Application{
		fyneApp:       fyneApp,
		window:        window,
		logger:        appLogger,
		controller:    mainController,
		view:          mainView,
		coordinator:   coordinator,
		exporter:      exporter,
		imageStore:    imageStore,
		session:       session,
		memoryManager: memManager,
		ctx:           appCtx,
		cancel:        appCancel,
	}

	application.setupWindowEvents()

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"library_dir": exporter.LibraryDir(),
	})

	return application, nil
}

// Run starts the UI event loop; it blocks until the window closes.
func (a *Application) Run(ctx context.Context) error {
	fyne.Do(func() {
		a.view.Show()
	})

	go func() {
		select {
		case <-ctx.Done():
			a.initiateShutdown()
		case <-a.ctx.Done():
		}
	}()

	go a.monitorPerformance()

	a.fyneApp.Run()
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.view.ShowConfirm(
			"Exit "+AppName,
			"Are you sure you want to exit?",
			func(confirmed bool) {
				if confirmed {
					a.initiateShutdown()
					a.window.Close()
				}
			},
		)
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}

func setupGracefulShutdown(application *Application, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		application.logger.Info("Application", "signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
		application.initiateShutdown()
	}()
}

// monitorPerformance periodically logs memory and session statistics.
func (a *Application) monitorPerformance() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.logPerformanceMetrics()
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *Application) logPerformanceMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	allocCount, deallocCount, usedMemory := a.memoryManager.GetStats()
	storeStats := a.imageStore.GetStats()

	a.logger.Debug("Application", "performance metrics", map[string]interface{}{
		"go_memory_mb":       memStats.Alloc / 1024 / 1024,
		"go_gc_runs":         memStats.NumGC,
		"mat_allocs":         allocCount,
		"mat_deallocs":       deallocCount,
		"mat_memory_mb":      usedMemory / 1024 / 1024,
		"images_loaded":      storeStats.TotalLoaded,
		"filters_applied":    storeStats.TotalFiltered,
		"avg_filter_time_ms": storeStats.AverageFilterTime.Milliseconds(),
		"goroutine_count":    runtime.NumGoroutine(),
	})

	a.view.SetMemoryInfo(usedMemory, int64(memStats.Alloc))
}

// initiateShutdown begins the shutdown sequence without blocking the UI.
func (a *Application) initiateShutdown() {
	a.cancel()

	go func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		a.performShutdownSequence(shutdownCtx)
	}()
}

func (a *Application) performShutdownSequence(ctx context.Context) {
	steps := []struct {
		name string
		fn   func()
	}{
		{"controller", a.controller.Shutdown},
		{"exporter", a.exporter.Flush},
		{"coordinator", a.coordinator.Shutdown},
		{"memory manager", a.memoryManager.Shutdown},
	}

	for _, step := range steps {
		done := make(chan struct{})
		go func(fn func()) {
			defer close(done)
			fn()
		}(step.fn)

		select {
		case <-done:
			a.logger.Debug("Application", "shutdown step completed", map[string]interface{}{
				"step": step.name,
			})
		case <-ctx.Done():
			a.logger.Warning("Application", "shutdown step timeout", map[string]interface{}{
				"step": step.name,
			})
			return
		}
	}

	a.logger.Info("Application", "shutdown complete", nil)
}
