package weavetest

import "github.com/iov-one/tokenswap"

// Tx carries a single message. When Err is set, GetMsg fails with it.
type Tx struct {
	Msg tokenswap.Msg
	Err error
}

var _ tokenswap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tokenswap.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is routed by RoutePath. When Err is set, validation and serialization
// fail with it.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ tokenswap.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
