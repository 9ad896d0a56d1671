package maskcoco

// 汇总为最终文档，不做任何计算
func BuildDocument(info Info, license License, cats *CategoryMap, images []Image, anns []Annotation) *Document {
	doc := &Document{
		Licenses:    []License{license},
		Info:        info,
		Categories:  cats.Categories(),
		Images:      images,
		Annotations: anns,
	}
	if doc.Images == nil {
		doc.Images = []Image{}
	}
	if doc.Annotations == nil {
		doc.Annotations = []Annotation{}
	}
	return doc
}

// 占位的license
func DefaultLicense() License {
	return License{Id: DEFAULT_LICENSE_ID}
}
