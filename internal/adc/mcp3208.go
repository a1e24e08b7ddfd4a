package adc

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MCP3208Speed is the SPI clock used for the converter (safe at 2.7V).
const MCP3208Speed = 1 * physic.MegaHertz

const mcp3208Channels = 8

// transactor is the part of spi.Conn the converter needs.
type transactor interface {
	Tx(w, r []byte) error
}

// MCP3208 is an 8-channel 12-bit SPI ADC read in single-ended mode.
type MCP3208 struct {
	conn transactor
	port spi.PortCloser
	w, r [3]byte
}

// OpenMCP3208 initializes the host drivers and connects to the converter on
// the named SPI port ("" selects the first available port).
func OpenMCP3208(port string) (*MCP3208, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", port, err)
	}

	c, err := p.Connect(MCP3208Speed, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("connect spi port %q: %w", port, err)
	}

	m := NewMCP3208(c)
	m.port = p
	return m, nil
}

// NewMCP3208 wraps an already connected SPI conn.
func NewMCP3208(c transactor) *MCP3208 {
	return &MCP3208{conn: c}
}

// Read performs one single-ended conversion of ch.
// The command is start bit, SGL=1 and the three channel bits, aligned so the
// 12-bit result ends in the last two bytes.
func (m *MCP3208) Read(ch Channel) (uint16, error) {
	if ch >= mcp3208Channels {
		return 0, fmt.Errorf("mcp3208: invalid channel %d", ch)
	}

	m.w = [3]byte{0x06 | byte(ch>>2), byte(ch&0x03) << 6, 0}
	if err := m.conn.Tx(m.w[:], m.r[:]); err != nil {
		return 0, fmt.Errorf("mcp3208: read channel %d: %w", ch, err)
	}

	return uint16(m.r[1]&0x0F)<<8 | uint16(m.r[2]), nil
}

// Close releases the SPI port if this converter opened it.
func (m *MCP3208) Close() error {
	if m.port == nil {
		return nil
	}
	if err := m.port.Close(); err != nil {
		return fmt.Errorf("close spi port: %w", err)
	}
	return nil
}
