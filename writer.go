package maskcoco

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wgdzlh/maskcoco/log"
	"github.com/wgdzlh/maskcoco/utils"

	"go.uber.org/zap"
)

const writerLogTag = "Writer:"

// 序列化文档为紧凑JSON，相同输入得到相同字节
func MarshalDocument(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

func EncodeDocument(w io.Writer, doc *Document) error {
	return json.NewEncoder(w).Encode(doc)
}

func ReadDocument(r io.Reader) (doc *Document, err error) {
	doc = &Document{}
	if err = json.NewDecoder(r).Decode(doc); err != nil {
		doc = nil
	}
	return
}

// 写出标注JSON，父目录不存在时自动创建
func WriteDocument(doc *Document, out string) (err error) {
	data, err := MarshalDocument(doc)
	if err != nil {
		return
	}
	if err = utils.WriteFileAtomic(out, TMP_DOCUMENT, data); err != nil {
		log.Error(writerLogTag+"write document failed", zap.String("out", out), zap.Error(err))
		err = fmt.Errorf("write %s: %w", out, err)
		return
	}
	log.Info(writerLogTag+"document written", zap.String("out", out), zap.Int("bytes", len(data)),
		zap.Int("images", len(doc.Images)), zap.Int("annotations", len(doc.Annotations)))
	return
}
