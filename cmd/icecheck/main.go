// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Command icecheck pings a single remote candidate over UDP and reports
// the pair's write/receive state as it converges, a manual-testing entry
// point in the spirit of pion/webrtc's examples/ directory rather than
// part of this module's library surface.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pion/logging"

	"github.com/pion/ice"
	"github.com/pion/ice/internal/udpport"
)

func main() {
	var (
		localAddr  = flag.String("local", "0.0.0.0:0", "local address to bind")
		remoteAddr = flag.String("remote", "", "remote host:port to ping")
		ufrag      = flag.String("ufrag", "icecheck", "local ICE ufrag")
		pwd        = flag.String("pwd", "icecheckpwd0000000000000000000", "local ICE password")
		remoteUfrag = flag.String("remote-ufrag", "icecheck", "remote ICE ufrag")
		remotePwd   = flag.String("remote-pwd", "icecheckpwd0000000000000000000", "remote ICE password")
		count      = flag.Int("count", 5, "number of pings to send")
		interval   = flag.Duration("interval", time.Second, "interval between pings")
	)
	flag.Parse()

	if *remoteAddr == "" {
		fmt.Fprintln(os.Stderr, "icecheck: -remote is required")
		os.Exit(2)
	}

	laddr, err := net.ResolveUDPAddr("udp", *localAddr)
	if err != nil {
		fatal("resolve local address", err)
	}
	raddr, err := net.ResolveUDPAddr("udp", *remoteAddr)
	if err != nil {
		fatal("resolve remote address", err)
	}

	loggerFactory := logging.NewDefaultLoggerFactory()
	log := loggerFactory.NewLogger("icecheck")

	port, err := udpport.NewUDPPort(nil, laddr, log)
	if err != nil {
		fatal("open local port", err)
	}
	defer port.Close()

	local := &ice.Candidate{
		Foundation:  "icecheck",
		Component:   1,
		NetworkType: ice.NetworkTypeUDP4,
		Protocol:    ice.ProtocolUDP,
		Type:        ice.CandidateTypeHost,
		Address:     laddr.IP.String(),
		Port:        laddr.Port,
		Ufrag:       *ufrag,
		Password:    *pwd,
	}
	remote := &ice.Candidate{
		Foundation:  "remote",
		Component:   1,
		NetworkType: ice.NetworkTypeUDP4,
		Protocol:    ice.ProtocolUDP,
		Type:        ice.CandidateTypeHost,
		Address:     raddr.IP.String(),
		Port:        raddr.Port,
		Ufrag:       *remoteUfrag,
		Password:    *remotePwd,
	}

	cfg := ice.DefaultConnectionConfig()
	cfg.Role = ice.RoleControlling
	cfg.LoggerFactory = loggerFactory

	conn := ice.NewConnection("icecheck", local, remote, port, cfg)
	port.Register(raddr.String(), conn)
	defer conn.Destroy()

	conn.Subscribe(ice.ConnectionEventHandler{
		OnStateChange: func(c *ice.Connection, reason ice.StateChangeReason) {
			// Callbacks run on the Connection's worker goroutine, so they
			// must not call its posting accessors (WriteState, Receiving).
			log.Infof("state change (%v)", reason)
		},
	})

	for i := 0; i < *count; i++ {
		if err := conn.Ping(time.Now(), nil); err != nil {
			log.Warnf("ping %d failed: %v", i, err)
		}
		time.Sleep(*interval)
		conn.UpdateState(time.Now())
		log.Infof("write=%s receiving=%v", conn.WriteState(), conn.Receiving())
	}

	fmt.Printf("write=%s receiving=%v rtt=%s\n", conn.WriteState(), conn.Receiving(), conn.RTT())
}

func fatal(step string, err error) {
	fmt.Fprintf(os.Stderr, "icecheck: %s: %v\n", step, err)
	os.Exit(1)
}
