package organizer

import (
	"fmt"
	"strings"

	"momento/internal/model"
)

const organizeSystemPrompt = `당신은 한국의 요리 전문가입니다. 사용자가 말로 설명한 요리법을 듣고, 이를 체계적이고 따라하기 쉬운 레시피로 정리해주세요.

다음 JSON 형식으로 응답해주세요:

{
  "title": "요리 이름",
  "description": "요리에 대한 간단한 설명",
  "ingredients": [
    {
      "name": "재료명",
      "amount": "분량",
      "notes": "특별한 주의사항이나 팁 (선택적)"
    }
  ],
  "steps": [
    {
      "step": 1,
      "instruction": "단계별 요리 방법",
      "time": "예상 소요 시간 (선택적)",
      "temperature": "온도 설정 (선택적)",
      "tips": "해당 단계의 팁 (선택적)"
    }
  ],
  "tips": "전체적인 요리 팁이나 주의사항",
  "servings": "몇 인분",
  "cooking_time": "총 조리 시간",
  "difficulty": "쉬움/보통/어려움",
  "category": "한식/중식/양식/일식/기타"
}

중요한 점:
1. 재료의 분량은 구체적으로 적어주세요 (예: "양파 1개", "소금 1작은술")
2. 조리 순서는 명확하고 따라하기 쉽게 작성해주세요
3. 온도나 시간이 언급되면 정확히 포함해주세요
4. 엄마만의 특별한 팁이나 비법이 있다면 tips에 포함해주세요
5. JSON 형식을 정확히 지켜주세요`

func organizeUserPrompt(transcript string) string {
	return fmt.Sprintf(`다음은 어머니가 설명해주신 요리법입니다. 이를 체계적인 레시피로 정리해주세요:

"%s"`, transcript)
}

func improveDescriptionPrompt(recipe *model.Recipe) string {
	names := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		names = append(names, ing.Name)
	}

	return fmt.Sprintf(`다음 레시피를 바탕으로 따뜻하고 감성적인 요리 설명을 작성해주세요.
가족의 정성과 사랑이 담긴 느낌으로 100자 내외로 작성해주세요.

요리명: %s
재료: %s
특징: %s`, recipe.Title, strings.Join(names, ", "), recipe.Tips)
}
