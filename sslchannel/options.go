// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sslchannel

import (
	"fmt"

	"golang.org/x/exp/slices"

	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/option"
)

// Configure applies the option-map-driven SSL configuration to engine:
// client/server mode (defaulting to defaultClientMode when
// option.SSLUseClientMode is unset, derived from whether the
// overlay was created as a client or server wrapper), client-auth mode,
// session-creation flag, and the enabled cipher-suite/protocol sequences,
// each intersected with engine's own supported set. A requested cipher or
// protocol absent from the engine's supported set is dropped from the
// enabled list; Configure fails with ioerr.ErrUnsupportedOption only when
// none of the requested entries is supported.
func Configure(engine Configurable, m *option.Map, defaultClientMode bool) error {
	engine.SetUseClientMode(option.Get(m, option.SSLUseClientMode, defaultClientMode))

	if option.Has(m, option.SSLClientAuthMode) {
		engine.SetClientAuth(option.Get(m, option.SSLClientAuthMode, option.NotRequested))
	}
	if option.Has(m, option.SSLSessionCreation) {
		engine.SetEnableSessionCreation(option.Get(m, option.SSLSessionCreation, true))
	}

	if option.Has(m, option.SSLEnabledCipherSuites) {
		requested := option.Get(m, option.SSLEnabledCipherSuites, nil)
		enabled, err := intersect(requested, engine.SupportedCipherSuites())
		if err != nil {
			return ioerr.Unsupported(option.SSLEnabledCipherSuites.Name())
		}
		engine.SetEnabledCipherSuites(enabled)
	}
	if option.Has(m, option.SSLEnabledProtocols) {
		requested := option.Get(m, option.SSLEnabledProtocols, nil)
		enabled, err := intersect(requested, engine.SupportedProtocols())
		if err != nil {
			return ioerr.Unsupported(option.SSLEnabledProtocols.Name())
		}
		engine.SetEnabledProtocols(enabled)
	}
	return nil
}

// intersect preserves requested's order, keeping only entries also present
// in supported. It fails if requested is non-empty but the intersection is
// empty — a fully unsatisfiable configuration, rather than an engine
// silently left with its prior defaults.
func intersect(requested, supported []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(requested))
	for _, r := range requested {
		if slices.Contains(supported, r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sslchannel: none of %v are supported", requested)
	}
	return out, nil
}
