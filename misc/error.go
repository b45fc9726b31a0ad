//revive:disable:var-naming
package misc

import (
	"flag"

	"github.com/prometheus/client_golang/prometheus"
)

func underTest() bool {
	return flag.Lookup("test.v") != nil
}

// Fatal expose fatal error, lgr terminates the process
func Fatal(name, desc string, err error) {
	if underTest() {
		return
	}
	TaskErrors.With(prometheus.Labels{"error": name}).Inc()
	PushMetrics()
	L.Logf("FATAL %s, %v", desc, err)
}

// Error expose error
func Error(name, desc string, err error) {
	if underTest() {
		return
	}
	TaskErrors.With(prometheus.Labels{"error": name}).Inc()
	L.Logf("ERROR %s, %v", desc, err)
}

// Warn expose warning
func Warn(desc string) {
	if !underTest() {
		L.Logf("WARN %s", desc)
	}
}

// Info expose info
func Info(desc string) {
	if !underTest() {
		L.Logf("INFO %s", desc)
	}
}

// Debug expose debug
func Debug(desc string) {
	if !underTest() {
		L.Logf("DEBUG %s", desc)
	}
}

// Inserted counts an inserted article of the source
func Inserted(source string) {
	ArticlesInserted.With(prometheus.Labels{"source": source}).Inc()
}

// PassResult records the outcome of a pass
func PassResult(success bool) {
	if success {
		LastPassSuccess.Set(1)
		return
	}
	LastPassSuccess.Set(0)
}
