package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/notification"
	"github.com/example/task-tracker/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(notification.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule())         // Core domain (record store, emits events)
	app.Register(api.NewModule())          // Driving adapter (depends on task)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST endpoints:")
	log.Println("  GET    /api/tasks?q=&sort=           - List tasks (filter + sort)")
	log.Println("  GET    /api/tasks/{id}               - Get a task")
	log.Println("  POST   /api/tasks                    - Create a task")
	log.Println("  PUT    /api/tasks/{id}               - Update a task (partial)")
	log.Println("  DELETE /api/tasks/{id}               - Delete a task")
	log.Println("  PATCH  /api/tasks/{id}/complete      - Mark complete")
	log.Println("  PATCH  /api/tasks/{id}/incomplete    - Mark incomplete")
	log.Println("  GET    /api/tasks/priority/{priority} - List by priority")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
