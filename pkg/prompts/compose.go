package prompts

import (
	"fmt"
	"strconv"

	"urbanvision-ao/urbanvision/pkg/input"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a composed sequence.
type Message struct {
	Role    string
	Content string
}

// AnalyzeParams are the validated inputs of an area analysis.
type AnalyzeParams struct {
	Area       string
	PM25       float64
	SO2        float64
	Vegetation float64
}

// PredictParams are the validated inputs of a multi-year prediction.
type PredictParams struct {
	Area        string
	Years       int
	CurrentTemp float64
	Vegetation  float64
}

// RecommendParams are the validated inputs of a restoration plan.
type RecommendParams struct {
	Area       string
	AreaSize   float64
	Vegetation float64
	Target     float64
}

func system() Message {
	return Message{Role: RoleSystem, Content: systemPrompt}
}

// Chat builds system + history + message. history is expected to be the
// output of input.History and is not filtered again.
func Chat(history []input.Turn, message string) []Message {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, system())
	for _, turn := range history {
		msgs = append(msgs, Message{Role: turn.Role, Content: turn.Content})
	}
	return append(msgs, Message{Role: RoleUser, Content: message})
}

// Analyze builds the area analysis sequence.
func Analyze(p AnalyzeParams) []Message {
	prompt := fmt.Sprintf(`Analise os dados ambientais da área %s:
- PM2.5: %s μg/m³
- SO2: %s ppm
- Vegetação: %s%%

Forneça:
1. Avaliação da qualidade do ar
2. Previsão de crescimento de zona de calor nos próximos 5-10 anos
3. Recomendações específicas de plantas para restabelecimento verde
4. Estimativa de tempo para recuperação ambiental
5. Se é adequado para novas indústrias ou não

Seja específico e científico nas recomendações.`,
		p.Area, num(p.PM25), num(p.SO2), num(p.Vegetation))

	return []Message{system(), {Role: RoleUser, Content: prompt}}
}

// Predict builds the multi-year prediction sequence.
func Predict(p PredictParams) []Message {
	prompt := fmt.Sprintf(`Para a área %s com temperatura atual média de %s°C e %s%% de vegetação:

Faça previsões para os próximos %d anos:
1. Aumento esperado de temperatura
2. Expansão das zonas de calor
3. Impacto na qualidade de vida
4. Cenário com intervenção verde vs sem intervenção

Forneça números e percentuais específicos baseados em tendências urbanas.`,
		p.Area, num(p.CurrentTemp), num(p.Vegetation), p.Years)

	return []Message{system(), {Role: RoleUser, Content: prompt}}
}

// Recommend builds the vegetation restoration plan sequence.
func Recommend(p RecommendParams) []Message {
	prompt := fmt.Sprintf(`Para a área %s com %sm² e vegetação atual de %s%%,
queremos atingir %s%% de cobertura verde.

Forneça um plano detalhado:
1. Quantidade de árvores e plantas necessárias (números específicos)
2. Tipos de espécies recomendadas para o clima de Luanda (tropical)
3. Cronograma de plantio
4. Tempo estimado para atingir a meta
5. Benefícios esperados (redução de temperatura, melhoria do ar)
6. Custos aproximados de implementação`,
		p.Area, num(p.AreaSize), num(p.Vegetation), num(p.Target))

	return []Message{system(), {Role: RoleUser, Content: prompt}}
}

// num renders v in its shortest decimal form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
