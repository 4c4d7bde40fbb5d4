package transport

// SendError is a stable, comparable send-path error. It is a string
// newtype — zero-allocation, usable as a map key, and implements error —
// the same shape the teacher's errcode.Code uses for its bus-facing error
// taxonomy.
type SendError string

func (e SendError) Error() string { return string(e) }

// ErrInsufficientCapacity is returned when the ring does not have room for
// the header-plus-padded-payload the caller is trying to send. The send had
// no side effect: the caller may retry once space frees up.
const ErrInsufficientCapacity SendError = "insufficient_capacity"

// RecvError is a stable, comparable receive-path error.
type RecvError string

func (e RecvError) Error() string { return string(e) }

const (
	// ErrEmpty means there is no traffic to receive yet. Transient,
	// caller-recoverable.
	ErrEmpty RecvError = "empty"
	// ErrMessageTooBig means the queued message is larger than the
	// caller's buffer. The packet is left queued; retry with a bigger
	// buffer.
	ErrMessageTooBig RecvError = "message_too_big"
	// ErrInvalidMessage means the framing is corrupt (a length field
	// larger than the receive buffer itself). This is fatal: the ring is
	// desynchronised and cannot be resynchronised in place.
	ErrInvalidMessage RecvError = "invalid_message"
)

// ConfigError reports a problem with the shared-memory region geometry
// supplied at construction time, before any traffic is exchanged.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

const (
	// ErrTooSmall means a buffer length is below the 24-byte floor, or the
	// region is shorter than its index header plus the buffer length.
	ErrTooSmall ConfigError = "too_small"
	// ErrInvalidSize means a buffer length is not a multiple of 4, or the
	// alignment is not a power of two between 4 and maxAlign.
	ErrInvalidSize ConfigError = "invalid_size"
)
