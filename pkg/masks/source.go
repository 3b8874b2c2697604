package masks

import "masks2zarr/internal/models"

// Source supplies the image description and its ROIs. The annotation
// service behind it is out of scope; the converter only needs this
// interface.
type Source interface {
	ImageROIs() (models.Image, []models.ROI, error)
}

// AnnotationFile is a Source backed by a JSON annotation export file.
type AnnotationFile string

var _ Source = AnnotationFile("")

func (f AnnotationFile) ImageROIs() (models.Image, []models.ROI, error) {
	return models.LoadAnnotations(string(f))
}
