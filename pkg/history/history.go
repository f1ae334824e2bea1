package history

import (
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/route"
)

// State describes where the application logically is, independent of
// which address encoding is active.
type State struct {
	// Path is the normalized logical path.
	Path string

	// Params are the route parameters extracted by the matcher. They are
	// derived from Path and are not part of the encoded address.
	Params map[string]string

	// Query holds the query values.
	Query map[string]string
}

// Location renders the state as a logical "path?query" request string,
// independent of the configured address encoding. The query is encoded
// deterministically (sorted keys).
func (s State) Location() string {
	if q := encodeQuery(s.Query); q != "" {
		return s.Path + "?" + q
	}
	return s.Path
}

// Encoding selects how the logical path is represented in the address.
type Encoding int

const (
	// EncodingPath carries the logical path as the address path itself,
	// relative to a configured base prefix.
	EncodingPath Encoding = iota

	// EncodingQuery carries the logical path inside one reserved query
	// key; all other query keys pass through untouched.
	EncodingQuery

	// EncodingFragment carries the logical path after a fragment marker.
	EncodingFragment
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingPath:
		return "path"
	case EncodingQuery:
		return "query"
	case EncodingFragment:
		return "fragment"
	}
	return "unknown"
}

// DefaultQueryKey is the reserved query key for EncodingQuery.
const DefaultQueryKey = "page"

// Config configures a Synchronizer.
type Config struct {
	// Encoding is fixed for the application's lifetime.
	Encoding Encoding

	// Base is the address prefix the logical path is relative to
	// (EncodingPath), or the document path the query/fragment hangs off
	// (EncodingQuery, EncodingFragment).
	Base string

	// QueryKey is the reserved key for EncodingQuery. The key belongs to
	// the synchronizer: a state query value under the same key is dropped
	// from the encoded address. Default: DefaultQueryKey.
	QueryKey string

	// Logger receives commit diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Synchronizer translates between logical navigation state and the
// host-visible address.
type Synchronizer struct {
	host   Host
	cfg    Config
	logger *slog.Logger

	// committing guards against the host change callback re-entering the
	// orchestrator while this synchronizer is itself writing the address.
	committing atomic.Bool

	onCommit func(replace bool)
	cancel   func()
}

// NewSynchronizer creates a synchronizer over a host.
func NewSynchronizer(host Host, cfg Config) *Synchronizer {
	if cfg.QueryKey == "" {
		cfg.QueryKey = DefaultQueryKey
	}
	cfg.Base = strings.TrimSuffix(cfg.Base, "/")
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{host: host, cfg: cfg, logger: logger}
}

// Encode renders a navigation state as a host-visible address.
func (s *Synchronizer) Encode(st State) string {
	path := route.Normalize(st.Path)
	query := encodeQuery(st.Query)

	switch s.cfg.Encoding {
	case EncodingQuery:
		values := url.Values{}
		values.Set(s.cfg.QueryKey, path)
		address := s.baseDocument() + "?" + values.Encode()
		if passThrough := encodeQuery(s.stripReserved(st.Query)); passThrough != "" {
			address += "&" + passThrough
		}
		return address

	case EncodingFragment:
		address := s.baseDocument() + "#" + path
		if query != "" {
			address += "?" + query
		}
		return address

	default: // EncodingPath
		address := s.cfg.Base + path
		if query != "" {
			address += "?" + query
		}
		return address
	}
}

// Decode parses a host-visible address back into a navigation state.
// Params are left nil; the matcher re-derives them from the path.
func (s *Synchronizer) Decode(address string) (State, error) {
	switch s.cfg.Encoding {
	case EncodingQuery:
		_, rawQuery, _ := strings.Cut(address, "?")
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return State{}, errors.New("H001").Wrap(err).
				WithDetailf("address %q", address)
		}
		path := values.Get(s.cfg.QueryKey)
		if path == "" {
			path = "/"
		}
		values.Del(s.cfg.QueryKey)
		return State{Path: route.Normalize(path), Query: flattenQuery(values)}, nil

	case EncodingFragment:
		_, fragment, ok := strings.Cut(address, "#")
		if !ok {
			fragment = "/"
		}
		path, rawQuery, _ := strings.Cut(fragment, "?")
		query, err := parseQueryMap(rawQuery)
		if err != nil {
			return State{}, errors.New("H001").Wrap(err).
				WithDetailf("address %q", address)
		}
		return State{Path: route.Normalize(path), Query: query}, nil

	default: // EncodingPath
		path, rawQuery, _ := strings.Cut(address, "?")
		if s.cfg.Base != "" {
			if !strings.HasPrefix(path, s.cfg.Base) {
				return State{}, errors.New("H001").
					WithDetailf("address %q lacks base prefix %q", address, s.cfg.Base)
			}
			path = path[len(s.cfg.Base):]
		}
		query, err := parseQueryMap(rawQuery)
		if err != nil {
			return State{}, errors.New("H001").Wrap(err).
				WithDetailf("address %q", address)
		}
		return State{Path: route.Normalize(path), Query: query}, nil
	}
}

// Commit writes an encoded address to the host. Exactly one entry is
// pushed, or the current one replaced, per completed navigation.
func (s *Synchronizer) Commit(address string, replace bool) error {
	s.committing.Store(true)
	defer s.committing.Store(false)

	var err error
	if replace {
		err = s.host.Replace(address)
	} else {
		err = s.host.Push(address)
	}
	if err != nil {
		return errors.New("H002").Wrap(err).WithDetailf("address %q", address)
	}
	if s.onCommit != nil {
		s.onCommit(replace)
	}
	return nil
}

// NotifyCommits registers an observer invoked after every successful
// commit. replace reports the commit mode. Intended for operational
// instrumentation; at most one observer is held.
func (s *Synchronizer) NotifyCommits(fn func(replace bool)) {
	s.onCommit = fn
}

// Subscribe forwards externally-triggered address changes (back/forward)
// as decoded states. Changes observed while this synchronizer is itself
// committing are dropped: they are echoes of our own write, not user
// intent.
func (s *Synchronizer) Subscribe(fn func(State)) {
	s.cancel = s.host.Subscribe(func(address string) {
		if s.committing.Load() {
			return
		}
		st, err := s.Decode(address)
		if err != nil {
			s.logger.Warn("undecodable address from host",
				"address", address,
				"err", err,
			)
			return
		}
		fn(st)
	})
}

// Close cancels the host subscription.
func (s *Synchronizer) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Host returns the underlying host collaborator.
func (s *Synchronizer) Host() Host {
	return s.host
}

// Encoding returns the configured encoding.
func (s *Synchronizer) Encoding() Encoding {
	return s.cfg.Encoding
}

// stripReserved removes the reserved path key from a user query before it
// passes through into an EncodingQuery address. Without this the key
// would appear twice and Decode would drop the user's value silently.
func (s *Synchronizer) stripReserved(query map[string]string) map[string]string {
	if _, ok := query[s.cfg.QueryKey]; !ok {
		return query
	}
	s.logger.Warn("dropping reserved query key from state query", "key", s.cfg.QueryKey)
	out := make(map[string]string, len(query)-1)
	for k, v := range query {
		if k != s.cfg.QueryKey {
			out[k] = v
		}
	}
	return out
}

// baseDocument is the document path query and fragment encodings hang off.
func (s *Synchronizer) baseDocument() string {
	if s.cfg.Base == "" {
		return "/"
	}
	return s.cfg.Base
}

// encodeQuery renders a query map deterministically (sorted keys).
func encodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return values.Encode()
}

// parseQueryMap parses a raw query string into a flat map.
func parseQueryMap(rawQuery string) (map[string]string, error) {
	if rawQuery == "" {
		return nil, nil
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return flattenQuery(values), nil
}

// flattenQuery keeps the first value per key.
func flattenQuery(values url.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
