package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinegdelta/spark-vector/internal/config"
	"github.com/justinegdelta/spark-vector/pkg/assign"
	"github.com/justinegdelta/spark-vector/pkg/logger"
)

// endpointJSON mirrors assign.Endpoint for decoding; assign.Endpoint
// intentionally has no json tags since the core has no file-format
// opinions (spec.md §6).
type endpointJSON struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Assign partitions to endpoints from JSON input files",
		RunE:  runAssign,
	}
	cmd.Flags().String("affinities", "", "path to a JSON array of string arrays (overrides config input.affinities_path)")
	cmd.Flags().String("endpoints", "", "path to a JSON array of {host,port} objects (overrides config input.endpoints_path)")
	cmd.Flags().Duration("timeout", 30*time.Second, "cancellation timeout for the assignment run")
	return cmd
}

func runAssign(cmd *cobra.Command, _ []string) error {
	configName, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	affinitiesPath, _ := cmd.Flags().GetString("affinities")
	if affinitiesPath == "" {
		affinitiesPath = cfg.Input.AffinitiesPath
	}
	endpointsPath, _ := cmd.Flags().GetString("endpoints")
	if endpointsPath == "" {
		endpointsPath = cfg.Input.EndpointsPath
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	log := logger.New(logger.Config{
		Level:     cfg.Logger.Level,
		Format:    cfg.Logger.Format,
		Output:    cfg.Logger.Output,
		AddCaller: cfg.Logger.AddCaller,
	})

	affinities, err := readAffinities(affinitiesPath)
	if err != nil {
		return fmt.Errorf("read affinities: %w", err)
	}
	endpoints, err := readEndpoints(endpointsPath)
	if err != nil {
		return fmt.Errorf("read endpoints: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := assign.Assign(ctx, affinities, endpoints, assign.WithLogger(log))
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readAffinities(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var affinities [][]string
	if err := json.NewDecoder(f).Decode(&affinities); err != nil {
		return nil, err
	}
	return affinities, nil
}

func readEndpoints(path string) ([]assign.Endpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []endpointJSON
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}

	endpoints := make([]assign.Endpoint, len(raw))
	for i, r := range raw {
		endpoints[i] = assign.Endpoint{Host: r.Host, Port: r.Port}
	}
	return endpoints, nil
}
