// Package imagemeta checks screenshots before they are attached to a scam
// report.
//
// Photos taken with a phone often carry EXIF metadata: where the picture
// was taken, which device took it and when. A report is shared with the
// backend operators, so the report command warns about such tags before
// uploading.
package imagemeta
