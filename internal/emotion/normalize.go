package emotion

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/emotiondetection/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText flattens markdown into the plain words a reader
// would see, dropping link targets, images and raw HTML.
func ConvertMarkdownToText(input string) string {
	md := blackfriday.New(blackfriday.WithNoExtensions())
	root := md.Parse([]byte(input))

	var buf bytes.Buffer
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Image, blackfriday.HTMLBlock, blackfriday.HTMLSpan:
			return blackfriday.SkipChildren
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			if entering {
				buf.Write(node.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			buf.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item, blackfriday.TableCell:
			if !entering {
				buf.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	plainText := strings.Join(strings.Fields(RemoveLinks(buf.String())), " ")
	return plainText
}

// NormalizingDetector strips markdown from the text before handing it to
// the wrapped detector.
type NormalizingDetector struct {
	next Detector
}

func NewNormalizingDetector(next Detector) *NormalizingDetector {
	return &NormalizingDetector{next: next}
}

func (d *NormalizingDetector) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	return d.next.Detect(ctx, ConvertMarkdownToText(text))
}

func (d *NormalizingDetector) HealthCheck(ctx context.Context) bool {
	if hc, ok := d.next.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return true
}
