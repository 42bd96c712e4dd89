package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kardianos/service"
)

// serverProgram implements service.Interface around the API server.
type serverProgram struct{}

// Start implements service.Interface.
func (p *serverProgram) Start(service.Service) error {
	go func() {
		cfg := mustLoadConfig()
		if err := serve(cfg); err != nil {
			log.Printf("deckforge service: %v", err)
		}
	}()
	return nil
}

// Stop implements service.Interface.
func (p *serverProgram) Stop(service.Service) error {
	log.Println("stopping deckforge service")
	return nil
}

func serviceConfig() *service.Config {
	return &service.Config{
		Name:        "DeckForge",
		DisplayName: "DeckForge API Server",
		Description: "Local deck analysis and recommendation API server",
	}
}

// runServiceCommand handles service management subcommands.
func runServiceCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: deckforge service [install|uninstall|start|stop|restart|status|run]")
		os.Exit(2)
	}
	action := os.Args[2]

	s, err := service.New(&serverProgram{}, serviceConfig())
	if err != nil {
		log.Fatalf("failed to create service: %v", err)
	}

	switch action {
	case "install":
		if err := s.Install(); err != nil {
			log.Fatalf("failed to install service: %v", err)
		}
		fmt.Println("service installed")
	case "uninstall":
		if err := s.Uninstall(); err != nil {
			log.Fatalf("failed to uninstall service: %v", err)
		}
		fmt.Println("service uninstalled")
	case "start":
		if err := s.Start(); err != nil {
			log.Fatalf("failed to start service: %v", err)
		}
		fmt.Println("service started")
	case "stop":
		if err := s.Stop(); err != nil {
			log.Fatalf("failed to stop service: %v", err)
		}
		fmt.Println("service stopped")
	case "restart":
		if err := s.Restart(); err != nil {
			log.Fatalf("failed to restart service: %v", err)
		}
		fmt.Println("service restarted")
	case "status":
		status, err := s.Status()
		if err != nil {
			log.Fatalf("failed to query service status: %v", err)
		}
		switch status {
		case service.StatusRunning:
			fmt.Println("running")
		case service.StatusStopped:
			fmt.Println("stopped")
		default:
			fmt.Println("unknown")
		}
	case "run":
		// Invoked by the service manager itself.
		if err := s.Run(); err != nil {
			log.Fatalf("service run failed: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown service action %q\n", action)
		os.Exit(2)
	}
}
