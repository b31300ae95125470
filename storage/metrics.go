package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Uploads réussis vers le stockage objet, par classe d'asset.",
	}, []string{"class"})

	uploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_upload_failures_total",
		Help: "Uploads avortés sur erreur du backend de stockage.",
	})

	cleanupDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_cleanup_deletes_total",
		Help: "Objets supprimés lors des nettoyages (échec ou remplacement).",
	})
)
