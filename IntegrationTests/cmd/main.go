package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"proxyconfig/IntegrationTests/scenario"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	list := flag.Bool("list", false, "list available scenarios and exit")
	scenarioName := flag.String("scenario", "", "scenario to run (or pass as positional arg)")
	baseURL := flag.String("base-url", "", "proxyconfig HTTP root (default: http://localhost:8080 or PROXYCONFIG_URL env)")
	grpcAddr := flag.String("grpc", "", "proxyconfig gRPC health address (default: PROXYCONFIG_GRPC_ADDR env)")
	flag.Parse()

	if *baseURL == "" {
		*baseURL = os.Getenv("PROXYCONFIG_URL")
	}
	if *baseURL == "" {
		*baseURL = defaultBaseURL
	}
	if *grpcAddr == "" {
		*grpcAddr = os.Getenv("PROXYCONFIG_GRPC_ADDR")
	}

	if *list {
		for _, name := range scenarioNames() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	name := *scenarioName
	if name == "" {
		args := flag.Args()
		if len(args) > 0 {
			name = args[0]
		}
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: integrationtests [--list] [--scenario=NAME] [--base-url=URL] [--grpc=ADDR] [scenario_name]")
		fmt.Fprintln(os.Stderr, "  use --list to list scenarios")
		os.Exit(2)
	}

	cfg := &scenario.Config{
		BaseURL:  *baseURL,
		GRPCAddr: *grpcAddr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Run scenario and capture result
	err := scenario.Run(name, ctx, cfg)

	// Output scenario result
	fmt.Println("\n=== Scenario Result ===")
	fmt.Printf("Scenario: %s\n", name)

	if err != nil {
		fmt.Printf("Status: FAILED\n")
		fmt.Printf("Error: %v\n", err)
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "\navailable scenarios: %s\n", strings.Join(scenarioNames(), ", "))
			fmt.Println("=====================")
			os.Exit(2)
		}
		fmt.Println("=====================")
		os.Exit(1)
	}

	fmt.Printf("Status: PASSED\n")
	fmt.Println("=====================")
	os.Exit(0)
}

func scenarioNames() []string {
	all := scenario.All()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
