package async

// Name identifies a Task, Chain, or Executor for observability only —
// signals, metrics, and trace tags — never for lookup or equality.
// Two Tasks may share a Name; nothing in this package compares them.
type Name = string
