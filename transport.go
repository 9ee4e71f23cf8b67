package main

import (
	"fmt"
	"net"
)

// Transport abstracts the datagram socket so the simulation can be
// exercised with an in-memory fake in tests. *net.UDPConn satisfies it
// directly.
type Transport interface {
	ReadFrom(p []byte) (n int, addr net.Addr, err error)
	WriteTo(p []byte, addr net.Addr) (n int, err error)
	LocalAddr() net.Addr
	Close() error
}

// ListenUDP binds the server's datagram socket. A bind failure is
// fatal at startup: the server cannot run without it.
func ListenUDP(addr string) (Transport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	return conn, nil
}
