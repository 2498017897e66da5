// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses client flags from args (without the program name).
//
// Flags:
//
//	-a remote API address (URL or host:port)
//	-l local control API address in format [host]:[port]
//	-d SQLite database DSN
//	-c/-config json file path with configs
//	-request-timeout remote request timeout (e.g. "10s")
//	-sync-interval periodic sync interval (e.g. "30s")
//	-quota-interval storage reconciliation interval (e.g. "5m")
//	-probe-interval connectivity probe interval (e.g. "10s")
//	-quota storage quota in bytes
//	-log-file client log file path
//	-headless run without the status screen
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("meal-planner-client", flag.ContinueOnError)

	var controlAddress NetAddress
	var (
		adapterAddress string
		databaseDSN    string
		jsonConfigPath string
		requestTimeout time.Duration
		syncInterval   time.Duration
		quotaInterval  time.Duration
		probeInterval  time.Duration
		quotaBytes     int64
		logFile        string
		headless       bool
	)

	fs.StringVar(&adapterAddress, "a", "", "Remote API address")
	fs.Var(&controlAddress, "l", "Local control API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "SQLite database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g. 10s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g. 30s)")
	fs.DurationVar(&quotaInterval, "quota-interval", 0, "Storage reconciliation interval (e.g. 5m)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g. 10s)")
	fs.Int64Var(&quotaBytes, "quota", 0, "Storage quota in bytes")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")
	fs.BoolVar(&headless, "headless", false, "Run without the status screen")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogFile:  logFile,
			Headless: headless,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB:         DB{DSN: databaseDSN},
			QuotaBytes: quotaBytes,
		},
		Server:       Server{HTTPAddress: controlAddress.String()},
		Network:      Network{ProbeInterval: probeInterval},
		Workers:      Workers{SyncInterval: syncInterval, QuotaInterval: quotaInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost".
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
