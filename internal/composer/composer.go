// Package composer turns listing facts into a tone-conditioned generation
// request. It performs no I/O.
package composer

import (
	"fmt"
	"strings"

	"listingcopy/internal/domain"
)

// Compose builds the prompt for facts in the given tone and length and attaches
// images in order. The only failure is a *domain.ValidationError for blank
// area, price or location.
func Compose(facts domain.ListingFacts, tone domain.Tone, length domain.LengthHint, images []domain.ImageAttachment) (domain.GenerationRequest, error) {
	if missing := facts.MissingRequired(); len(missing) > 0 {
		return domain.GenerationRequest{}, &domain.ValidationError{Fields: missing}
	}

	bundle := bundleFor(tone)
	sb := &strings.Builder{}

	sb.WriteString(bundle.persona)
	sb.WriteString("\n\n")

	writeExample(sb, bundle, facts)
	writeFacts(sb, facts)
	if len(images) > 0 {
		writeImageInstructions(sb, len(images))
	}
	writeConstraints(sb, length)

	var attachments []domain.ImageAttachment
	if len(images) > 0 {
		attachments = make([]domain.ImageAttachment, len(images))
		copy(attachments, images)
	}
	return domain.GenerationRequest{Prompt: sb.String(), Images: attachments}, nil
}

func writeExample(sb *strings.Builder, bundle toneBundle, facts domain.ListingFacts) {
	sb.WriteString("좋은 예시:\n\"")
	sb.WriteString(bundle.example(facts))
	sb.WriteString("\"\n\n")
	if len(bundle.avoid) > 0 {
		sb.WriteString("피해야 할 표현:\n")
		for _, item := range bundle.avoid {
			fmt.Fprintf(sb, "- %s\n", item)
		}
		sb.WriteString("\n")
	}
}

func writeFacts(sb *strings.Builder, f domain.ListingFacts) {
	sb.WriteString("매물 정보:\n")
	fmt.Fprintf(sb, "- 위치: %s\n", f.Location)
	fmt.Fprintf(sb, "- 평수: %s\n", f.Area)
	fmt.Fprintf(sb, "- 가격: %s\n", f.Price)
	optional := []struct {
		label string
		value string
	}{
		{"방 개수", f.Rooms},
		{"욕실 수", f.Bathrooms},
		{"층수", f.Floor},
		{"추가 정보", f.AdditionalInfo},
	}
	for _, item := range optional {
		if strings.TrimSpace(item.value) == "" {
			continue
		}
		fmt.Fprintf(sb, "- %s: %s\n", item.label, item.value)
	}
	sb.WriteString("\n")
}

func writeImageInstructions(sb *strings.Builder, count int) {
	fmt.Fprintf(sb, "첨부된 매물 사진 %d장 분석:\n", count)
	sb.WriteString("- 공간 구성과 넓이감, 마감재 수준, 관리 상태, 눈에 띄는 특징을 직접 둘러본 것처럼 설명할 것\n")
	sb.WriteString("- 사진으로 확인되지 않는 내용은 추측하지 말 것\n")
	fmt.Fprintf(sb, "- 사진을 참고했다는 사실이 드러나는 표현 금지 (%s)\n\n", quoteJoin(photoRevealTerms))
}

func writeConstraints(sb *strings.Builder, length domain.LengthHint) {
	sb.WriteString("핵심 원칙:\n")
	sb.WriteString("1. 과장하지 말 것 - 실제 있을 법한 정보만\n")
	sb.WriteString("2. 구체적으로 - \"역세권\"이면 \"도보 5분\" 같은 구체적 표현\n")
	sb.WriteString("3. 자연스러운 한국어 - 광고 카피가 아닌 실용적 정보\n")
	fmt.Fprintf(sb, "4. %s (전체 4-8줄 이내)\n", lengthInstruction(length))
	sb.WriteString("5. 이모지는 적절히 (2-4개)\n\n")

	sb.WriteString("주의사항:\n")
	fmt.Fprintf(sb, "- %s 같은 과장 금지\n", quoteJoin(exaggerationTerms))
	fmt.Fprintf(sb, "- %s 같은 압박 금지\n", quoteJoin(pressureTerms))
	sb.WriteString("- 있지도 않은 정보 지어내지 말 것\n")
	sb.WriteString("- 설명문만 작성 (다른 말 하지 말 것)\n\n")
	sb.WriteString("설명문:")
}

func quoteJoin(terms []string) string {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = fmt.Sprintf("%q", term)
	}
	return strings.Join(quoted, ", ")
}
