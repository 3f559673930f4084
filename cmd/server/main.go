package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"mapplanner-server/internal/editor"
	"mapplanner-server/internal/server"
	"mapplanner-server/internal/version"
	"mapplanner-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var mapPath string
	var recentPath string
	var port string
	// -map открывает файл карты сразу при старте, чтобы клиент
	// получил готовую сцену первым же INIT.
	flag.StringVar(&mapPath, "map", "", "Map file (.gmap/.json) to open at startup")
	flag.StringVar(&recentPath, "recent", "recent.txt", "Recent files list path (empty to disable)")
	flag.StringVar(&port, "port", "", "Listen port (defaults to MP_PORT or 8080)")
	flag.Parse()

	logger.Log.Info("Starting Map Planner Server...")
	logger.Log.Info(version.String())

	if port == "" {
		port = os.Getenv("MP_PORT")
	}
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	session := editor.NewSession()
	if mapPath != "" {
		if err := session.Open(mapPath); err != nil {
			logger.Log.Fatal("Failed to open map:", err)
		}
	}

	recent := server.NewRecentFiles(recentPath)
	if mapPath != "" {
		recent.Touch(mapPath)
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(session, port, recent)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Несохраненные правки НЕ сохраняем молча: авто-сохранение могло бы
	// затереть файл, который пользователь сознательно не трогал.
	if session.Dirty() {
		logger.Log.Warn("Unsaved changes discarded on shutdown")
	}

	logger.Log.Info("Done.")
}
