package composer

import (
	"fmt"

	"listingcopy/internal/domain"
)

type toneBundle struct {
	persona string
	example func(f domain.ListingFacts) string
	avoid   []string
}

// bundleFor is the only place a Tone is dispatched on.
func bundleFor(tone domain.Tone) toneBundle {
	switch tone {
	case domain.ToneProfessional:
		return professionalBundle
	case domain.ToneFriendly:
		return friendlyBundle
	case domain.ToneLuxury:
		return luxuryBundle
	case domain.ToneDefault:
		return defaultBundle
	default:
		return defaultBundle
	}
}

const personaHeader = "당신은 실력있는 부동산 중개사입니다.\n네이버부동산/직방 스타일로 매물 설명문을 작성해주세요.\n"

var defaultBundle = toneBundle{
	persona: personaHeader + "작성 스타일: 자연스럽고 균형잡힌 톤으로 작성하세요.",
	example: func(f domain.ListingFacts) string {
		return fmt.Sprintf("%s 역세권 %s 매물\n%s\n✅ 역 도보 5분, 편의시설 인접\n✅ 남향, 채광 좋음\n✅ 깔끔한 실내, 관리 잘 된 상태\n즉시 입주 가능합니다.",
			f.Location, f.Area, f.Price)
	},
	avoid: []string{
		"광고 카피 같은 과한 수식어",
		"근거 없는 \"최고\", \"최상\" 같은 최상급 표현",
	},
}

var professionalBundle = toneBundle{
	persona: personaHeader + "작성 스타일: 전문적이고 신뢰감 있는 톤으로 작성하세요.",
	example: func(f domain.ListingFacts) string {
		return fmt.Sprintf("%s 역세권 %s 매물입니다.\n남향 구조로 채광이 우수하며, 역까지 도보 5분 거리입니다.\n%s / 관리비 저렴\n깔끔한 실내 상태, 즉시 입주 가능합니다.",
			f.Location, f.Area, f.Price)
	},
	avoid: []string{
		"\"파격가\", \"절호의 찬스\", \"놀라운\" 등 과장된 표현",
		"\"지금 바로\", \"서둘러\" 등 압박 표현",
	},
}

var friendlyBundle = toneBundle{
	persona: personaHeader + "작성 스타일: 친근하고 편안한 톤으로 작성하세요.",
	example: func(f domain.ListingFacts) string {
		return fmt.Sprintf("✨ %s 바로 앞이에요!\n🏠 %s로 넉넉한 공간\n💰 %s\n🚇 출퇴근 편하고, 주변 편의시설 다 있어요\n깨끗하게 관리된 집이라 보시면 마음에 드실 거예요 😊",
			f.Location, f.Area, f.Price)
	},
	avoid: []string{
		"너무 많은 이모지 (적절하게 3-4개)",
		"과도한 감탄사",
	},
}

var luxuryBundle = toneBundle{
	persona: personaHeader + "작성 스타일: 고급스럽고 품격있는 톤으로 작성하세요.",
	example: func(f domain.ListingFacts) string {
		return fmt.Sprintf("✨ %s 프리미엄 레지던스\n🏛️ %s / %s\n역세권 입지의 가치를 아시는 분께 권해드립니다.\n남향 구조, 채광 우수\n정돈된 주거 환경에서 품격있는 라이프를 누리실 수 있습니다.",
			f.Location, f.Area, f.Price)
	},
	avoid: []string{
		"\"럭셔리\", \"VIP\" 등 직접적인 표현 (암묵적으로 표현)",
		"과도한 수식어",
	},
}

// Forbidden phrases shared by every tone.
var (
	exaggerationTerms = []string{"파격가", "놀라운", "절호의 찬스", "역대급", "최저가 보장"}
	pressureTerms     = []string{"지금 바로 문의", "서둘러", "마감 임박", "놓치면 후회"}
	photoRevealTerms  = []string{"사진을 보면", "사진에서", "사진상", "이미지를 보면", "이미지에서"}
)

func lengthInstruction(length domain.LengthHint) string {
	switch length {
	case domain.LengthShort:
		return "4-5줄 정도로 짧고 간결하게"
	case domain.LengthLong:
		return "7-8줄 정도로 조금 더 자세하게"
	default:
		return "5-6줄 정도로 간결하게"
	}
}
