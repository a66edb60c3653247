package irc

import (
	"crypto/tls"
	"errors"
	"net"
	"strconv"
)

// Dial opens a plaintext TCP stream to (host, port), per spec.md §4.E.
func Dial(host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, portString(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, wrapConnectionError(classifyDialErr(err), err)
	}
	return conn, nil
}

// DialTLS opens a TLS stream to (host, port). Hostname verification
// against SNI is mandatory (spec.md §6: "hostname verification against
// SNI is mandatory") — unlike the teacher's DialSSL, there is
// deliberately no trust-bypass parameter.
func DialTLS(host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, portString(port))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, wrapConnectionError(classifyDialErr(err), err)
	}
	return conn, nil
}

func portString(port int) string {
	return strconv.Itoa(port)
}

func classifyDialErr(err error) ConnectionKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return InvalidDNS
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ConnectTCP
	}
	return ConnectionUnknown
}
