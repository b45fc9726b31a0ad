// Package misc holds the logger and the metrics shared by every package
package misc

import (
	"github.com/go-pkgz/lgr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var pusher *push.Pusher

// L is logger
var L = lgr.New(lgr.Msec, lgr.CallerFile, lgr.CallerFunc)

// TaskErrors is error metrics
var TaskErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "plate_errors",
}, []string{"error"})

// ArticlesInserted counts new articles per source
var ArticlesInserted = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "plate_articles_inserted",
}, []string{"source"})

// LastPassSuccess is 1 when every source of the last pass succeeded
var LastPassSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "plate_last_pass_success",
})

// SetupLog rebuilds the logger, debug enables DEBUG lines
func SetupLog(debug bool) {
	if debug {
		L = lgr.New(lgr.Msec, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
		return
	}
	L = lgr.New(lgr.Msec, lgr.CallerFile, lgr.CallerFunc)
}

// InitMetrics initializes the metrics
func InitMetrics(url, job string) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(TaskErrors, ArticlesInserted, LastPassSuccess)
	pusher = push.New(url, job).Gatherer(registry)
}

// PushMetrics push metrics, does nothing without a pushgateway
func PushMetrics() {
	if pusher == nil {
		return
	}
	if err := pusher.Push(); err != nil {
		L.Logf("ERROR could not push to Pushgateway, %v", err)
	}
	TaskErrors.Reset()
	ArticlesInserted.Reset()
}
