// Package logging provides structured logging for asnw.
//
// # Creating a Logger
//
// Build a logger from configuration:
//
//	logger, closer, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "/var/log/asnw.log",
//	})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
// Or write to any io.Writer:
//
//	logger := logging.NewWithWriter(logging.LevelDebug, logging.FormatText, os.Stderr)
//
// Library code that takes an optional logger defaults to NewNop.
//
// # Structured Logging
//
// Entries carry key-value pairs:
//
//	logger.Debug("ber: buffer grown", "from", 1024, "to", 2048)
//
// Text format:
//
//	2026-02-18T10:30:00Z [debug] ber: buffer grown from=1024 rules=DER to=2048
//
// JSON format:
//
//	{"from":1024,"level":"debug","msg":"ber: buffer grown","rules":"DER","to":2048,"ts":"2026-02-18T10:30:00Z"}
//
// Persistent fields are attached with WithFields; derived loggers share the
// parent's output.
package logging
