// Package vfs implements the protocol-independent core of a virtual
// filesystem: an inode registry, a resource contract with file and
// directory capability views, per-operation dispatch, and a unix-style
// permission evaluator.
//
// # Architecture Overview
//
// The package is organized around four pieces:
//
//   - Registry: owns the Inode to Resource mapping and identifier
//     allocation. Identifiers are monotonically increasing and never
//     reused; identifier 1 is reserved for the root.
//   - Resource contract: the wide seven-operation surface the dispatcher
//     talks to, plus the narrow File and Directory contracts with their
//     widening adapters.
//   - Dispatcher: routes one structured call at a time to the target
//     resource and enforces the per-operation result contracts (inode
//     stamping, "." and ".." seeding, read length checking).
//   - Request: the per-call bundle of caller identity, target inode and
//     registry access handed to every resource operation.
//
// # Concurrency Model
//
// Dispatch is strictly serial: the dispatcher holds a mutex for the full
// duration of each operation, so a resource is never entered twice at
// once. A resource reaches other resources only through its Request,
// which borrows the child for exactly one nested attribute query. The
// borrow discipline is enforced: re-entering a resource that is already
// being served panics rather than corrupting state.
//
// # Error Model
//
// Operations return *OpError values carrying a fixed vocabulary of codes
// (NotFound, NotSupported, WrongNodeKind, PermissionDenied, RangeError,
// BadArgument). Conditions that can only arise from a bug in the
// embedding application, such as identifier exhaustion on Register or a
// read returning more bytes than requested, panic instead.
package vfs
