// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import (
	"testing"

	"code.hybscloud.com/nio/ioerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderCopyOnWrite(t *testing.T) {
	b := NewBuilder()
	Set(b, MaxInboundMessageSize, 1024)
	m1 := b.Build()

	Set(b, MaxInboundMessageSize, 2048)
	m2 := b.Build()

	assert.Equal(t, 1024, Get(m1, MaxInboundMessageSize, 0))
	assert.Equal(t, 2048, Get(m2, MaxInboundMessageSize, 0))
}

func TestGetReturnsDefaultWhenUnset(t *testing.T) {
	m := NewBuilder().Build()
	assert.Equal(t, 4096, Get(m, MaxInboundMessageSize, 4096))
	assert.False(t, Has(m, MaxInboundMessageSize))
}

func TestUnsetRemovesBinding(t *testing.T) {
	b := NewBuilder()
	Set(b, KeepAlive, true)
	Unset(b, KeepAlive)
	m := b.Build()
	assert.False(t, Has(m, KeepAlive))
}

func TestFromMapSeedsBuilder(t *testing.T) {
	m := Set(NewBuilder(), TCPNoDelay, true).Build()
	b2 := FromMap(m)
	assert.True(t, Get(b2.Build(), TCPNoDelay, false))
}

func TestSetSequenceClonesSlice(t *testing.T) {
	vals := []string{"TLS_AES_128_GCM_SHA256"}
	m := SetSequence(NewBuilder(), SSLEnabledCipherSuites, vals).Build()
	vals[0] = "mutated"
	assert.Equal(t, []string{"TLS_AES_128_GCM_SHA256"}, Get(m, SSLEnabledCipherSuites, nil))
}

func TestEmptyMapBehavesAsZeroValue(t *testing.T) {
	assert.Equal(t, 10, Get(Empty, MaxInboundMessageSize, 10))
	assert.Equal(t, 10, Get(nil, MaxInboundMessageSize, 10))
}

func TestParseUnknownOptionIsUnsupported(t *testing.T) {
	b := NewBuilder()
	err := Parse(b, "NOT_A_REAL_OPTION", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ioerr.ErrUnsupportedOption)
}

func TestParseAndUnparseRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, Parse(b, "KEEP_ALIVE", "true"))
	require.NoError(t, Parse(b, "LINGER", "30"))
	m := b.Build()

	assert.True(t, Get(m, KeepAlive, false))
	assert.Equal(t, 30, Get(m, Linger, 0))

	out := Unparse(m)
	assert.Contains(t, out, "KEEP_ALIVE=true")
	assert.Contains(t, out, "LINGER=30")
}

func TestParseSequenceOption(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, Parse(b, "SSL_ENABLED_PROTOCOLS", "TLSv1.2,TLSv1.3"))
	m := b.Build()
	assert.Equal(t, []string{"TLSv1.2", "TLSv1.3"}, Get(m, SSLEnabledProtocols, nil))
	assert.Contains(t, Unparse(m), "SSL_ENABLED_PROTOCOLS=TLSv1.2,TLSv1.3")
}

func TestParseClientAuthMode(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, Parse(b, "SSL_CLIENT_AUTH_MODE", "REQUIRED"))
	assert.Equal(t, Required, Get(b.Build(), SSLClientAuthMode, NotRequested))

	assert.Error(t, Parse(NewBuilder(), "SSL_CLIENT_AUTH_MODE", "BOGUS"))
}
