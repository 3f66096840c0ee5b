// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sslchannel

import (
	"testing"

	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigurable struct {
	useClientMode  bool
	clientAuth     option.ClientAuthMode
	sessionCreated bool
	ciphers        []string
	protocols      []string
}

func (f *fakeConfigurable) SetUseClientMode(clientMode bool)         { f.useClientMode = clientMode }
func (f *fakeConfigurable) SetClientAuth(mode option.ClientAuthMode) { f.clientAuth = mode }
func (f *fakeConfigurable) SetEnableSessionCreation(enabled bool)    { f.sessionCreated = enabled }
func (f *fakeConfigurable) SetEnabledCipherSuites(suites []string)   { f.ciphers = suites }
func (f *fakeConfigurable) SetEnabledProtocols(protocols []string)   { f.protocols = protocols }
func (f *fakeConfigurable) SupportedCipherSuites() []string {
	return []string{"TLS_AES_128_GCM_SHA256", "TLS_AES_256_GCM_SHA384"}
}
func (f *fakeConfigurable) SupportedProtocols() []string { return []string{"TLSv1.2", "TLSv1.3"} }

func TestConfigureDefaultsClientModeFromCaller(t *testing.T) {
	eng := &fakeConfigurable{}
	require.NoError(t, Configure(eng, option.Empty, true))
	assert.True(t, eng.useClientMode)

	eng2 := &fakeConfigurable{}
	require.NoError(t, Configure(eng2, option.Empty, false))
	assert.False(t, eng2.useClientMode)
}

func TestConfigureExplicitUseClientModeOverridesDefault(t *testing.T) {
	eng := &fakeConfigurable{}
	m := option.Set(option.NewBuilder(), option.SSLUseClientMode, false).Build()
	require.NoError(t, Configure(eng, m, true))
	assert.False(t, eng.useClientMode)
}

func TestConfigureClientAuthAndSessionCreationPassThrough(t *testing.T) {
	eng := &fakeConfigurable{}
	b := option.NewBuilder()
	option.Set(b, option.SSLClientAuthMode, option.Required)
	option.Set(b, option.SSLSessionCreation, false)
	require.NoError(t, Configure(eng, b.Build(), true))

	assert.Equal(t, option.Required, eng.clientAuth)
	assert.False(t, eng.sessionCreated)
}

func TestConfigureIntersectsCipherSuitesWithSupported(t *testing.T) {
	eng := &fakeConfigurable{}
	m := option.SetSequence(option.NewBuilder(), option.SSLEnabledCipherSuites,
		[]string{"TLS_AES_128_GCM_SHA256", "TLS_UNKNOWN_SUITE"}).Build()

	require.NoError(t, Configure(eng, m, true))
	assert.Equal(t, []string{"TLS_AES_128_GCM_SHA256"}, eng.ciphers)
}

func TestConfigureIntersectsProtocolsWithSupported(t *testing.T) {
	eng := &fakeConfigurable{}
	m := option.SetSequence(option.NewBuilder(), option.SSLEnabledProtocols,
		[]string{"TLSv1.3"}).Build()

	require.NoError(t, Configure(eng, m, true))
	assert.Equal(t, []string{"TLSv1.3"}, eng.protocols)
}

func TestConfigureFullyUnsatisfiableCipherSuitesFails(t *testing.T) {
	eng := &fakeConfigurable{}
	m := option.SetSequence(option.NewBuilder(), option.SSLEnabledCipherSuites,
		[]string{"TLS_NOT_SUPPORTED"}).Build()

	err := Configure(eng, m, true)
	assert.ErrorIs(t, err, ioerr.ErrUnsupportedOption)
}

func TestConfigureNoOptionsSetLeavesCipherProtocolUntouched(t *testing.T) {
	eng := &fakeConfigurable{}
	require.NoError(t, Configure(eng, option.Empty, true))
	assert.Nil(t, eng.ciphers)
	assert.Nil(t, eng.protocols)
}
