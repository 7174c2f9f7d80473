package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aeolus-osc/aeolus-go/pkg/version"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates the TXT records for info. An empty protocol version
// is written as the current one.
func EncodeTXT(info *ServiceInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	txt[TXTKeyVersion] = TXTVersion
	txt[TXTKeyProtocol] = info.Protocol
	if info.Protocol == "" {
		txt[TXTKeyProtocol] = version.Current
	}
	txt[TXTKeyChannel] = strconv.Itoa(info.Channel)

	if info.Instrument != "" {
		txt[TXTKeyInstrument] = info.Instrument
	}

	return txt
}

// DecodeTXT parses TXT records into a ServiceInfo. The protocol version
// must be compatible with version.Current.
func DecodeTXT(txt TXTRecordMap) (*ServiceInfo, error) {
	info := &ServiceInfo{}

	v, ok := txt[TXTKeyProtocol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyProtocol)
	}
	peer, err := version.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTXTRecord, err)
	}
	current, _ := version.Parse(version.Current)
	if !current.Compatible(peer) {
		return nil, fmt.Errorf("%w: %s", ErrIncompatible, peer)
	}
	info.Protocol = v

	chStr, ok := txt[TXTKeyChannel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyChannel)
	}
	ch, err := strconv.Atoi(chStr)
	if err != nil || ch < 1 || ch > MaxChannel {
		return nil, fmt.Errorf("%w: invalid channel %q", ErrInvalidTXTRecord, chStr)
	}
	info.Channel = ch

	info.Instrument = txt[TXTKeyInstrument]

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value"
// strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: instance name", ErrMissingRequired)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}

// InstanceName builds a service instance name from a base name and host,
// truncated to the DNS label limit.
func InstanceName(base, host string) string {
	name := base
	if host != "" {
		name = fmt.Sprintf("%s (%s)", base, host)
	}
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}
