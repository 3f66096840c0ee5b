// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "code.hybscloud.com/nio/option"

// MaxInbound reads option.MaxInboundMessageSize from m, defaulting to 0
// ("no limit") when unset — replacing a local framer.Options.ReadLimit
// field with a lookup against the shared option map.
func MaxInbound(m *option.Map) int {
	return option.Get(m, option.MaxInboundMessageSize, 0)
}

// MaxOutbound reads option.MaxOutboundMessageSize from m, defaulting to 0.
func MaxOutbound(m *option.Map) int {
	return option.Get(m, option.MaxOutboundMessageSize, 0)
}
