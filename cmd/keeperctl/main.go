// Package main provides a line-oriented console for the keeper gRPC dice
// service. Each input line is sent as typed, so "rd 1 spot" and "3d6+2" both work.
// "help" lists the commands by category.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/game/command"
	"github.com/cory-johannsen/keeper/internal/transport/grpcapi"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	addr := flag.String("addr", "", "gRPC address; defaults to grpc.host:grpc.port from config")
	ip := flag.String("ip", "console", "origin reported with each command")
	timeout := flag.Duration("timeout", 5*time.Second, "per-command timeout")
	flag.Parse()

	target := *addr
	if target == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		target = cfg.GRPC.Addr()
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("connecting to %s: %v", target, err)
	}
	defer conn.Close()
	client := grpcapi.NewClient(conn)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "quit", "exit":
			return
		case "help":
			printHelp(command.DefaultRegistry())
		default:
			run(client, line, *ip, *timeout)
		}
		fmt.Print("> ")
	}
}

func run(client *grpcapi.Client, line, ip string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.RollLine(ctx, line, ip, time.Now().Format(time.TimeOnly))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			fmt.Println(st.Message())
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	raw, err := protojson.Marshal(out.GetFields()["result"])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println(string(raw))
}

func printHelp(reg *command.Registry) {
	for _, sec := range reg.Help() {
		fmt.Printf("%s:\n", sec.Category)
		for _, c := range sec.Commands {
			fmt.Printf("  %-4s %s\n", c.Name, c.Help)
		}
	}
	fmt.Println("  help, quit")
}
