package data

// Keys of the LUsers counters, matching the names the server statistics
// numerics carry.
const (
	LUsersHighestConnections = "HIGHESTCONNECTIONS"
	LUsersTotalConnections   = "TOTALCONNECTIONS"
	LUsersUsers              = "USERS"
	LUsersInvisible          = "INVISIBLE"
	LUsersServers            = "SERVERS"
	LUsersOperators          = "OPERATORS"
	LUsersUnknown            = "UNKNOWN"
	LUsersChannels           = "CHANNELS"
	LUsersClients            = "CLIENTS"
	LUsersLocalServers       = "LSERVERS"
	LUsersLocalUsers         = "LOCALUSERS"
	LUsersLocalMax           = "LOCALMAX"
	LUsersGlobalUsers        = "GLOBALUSERS"
	LUsersGlobalMax          = "GLOBALMAX"
)

// LUsers is the flat mapping of named server statistics counters, updated
// incrementally as numerics 250-266 arrive. Counters are only ever
// overwritten field-by-field, never reset, so the map converges on the
// server's latest view. Values stay the raw tokens the server sent.
type LUsers struct {
	counters map[string]string
}

// NewLUsers creates an empty counter set.
func NewLUsers() *LUsers {
	return &LUsers{counters: make(map[string]string)}
}

// Set overwrites a single counter.
func (l *LUsers) Set(key, value string) {
	l.counters[key] = value
}

// Get returns a counter's raw token, empty when never reported.
func (l *LUsers) Get(key string) string {
	return l.counters[key]
}

// Snapshot copies the counters for handing to an event payload.
func (l *LUsers) Snapshot() map[string]string {
	snap := make(map[string]string, len(l.counters))
	for k, v := range l.counters {
		snap[k] = v
	}
	return snap
}
