package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/flightcrud/internal/pkg/config"
	"github.com/frontandrew/flightcrud/internal/pkg/redis"
)

// Проверка генератора идентификаторов на живом Redis.
// Использует те же переменные окружения, что и API (REDIS_HOST, REDIS_PORT, ...)
func main() {
	fmt.Println("=========================================")
	fmt.Println("Redis ID Sequence Check")
	fmt.Println("=========================================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	client, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		fmt.Printf("❌ Failed to connect to Redis at %s: %v\n", cfg.Redis.Address(), err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("✅ Connected to Redis at %s\n", cfg.Redis.Address())
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Check 1: PING")
	if err := client.Ping(ctx); err != nil {
		fmt.Printf("❌ PING failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ PING successful")
	fmt.Println()

	// Отдельное имя, чтобы не сдвигать боевые последовательности
	fmt.Println("Check 2: monotonic IDs")
	seq := redis.NewSequence(client)
	name := fmt.Sprintf("check:%d", time.Now().UnixNano())

	first, err := seq.Next(ctx, name)
	if err != nil {
		fmt.Printf("❌ Next failed: %v\n", err)
		os.Exit(1)
	}
	second, err := seq.Next(ctx, name)
	if err != nil {
		fmt.Printf("❌ Next failed: %v\n", err)
		os.Exit(1)
	}
	if second != first+1 {
		fmt.Printf("❌ Expected %d after %d, got %d\n", first+1, first, second)
		os.Exit(1)
	}
	fmt.Printf("✅ %s: %d -> %d\n", name, first, second)
	fmt.Println()

	fmt.Println("=========================================")
	fmt.Println("✅ Redis sequence works")
	fmt.Println("=========================================")
}
