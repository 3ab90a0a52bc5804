// Package assistant es el asistente de síntomas: respuestas fijas por palabra clave,
// sin estado en el servidor (el historial vive en el cliente).
package assistant

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Topic es el síntoma detectado en el mensaje.
type Topic string

const (
	TopicVomit    Topic = "vomit"
	TopicAppetite Topic = "appetite"
	TopicDiarrhea Topic = "diarrhea"
	TopicItching  Topic = "itching"
	TopicGeneral  Topic = "general"
)

type QuickPrompt struct {
	Text     string `json:"text"`
	Response string `json:"-"`
	Topic    Topic  `json:"topic"`
}

type Reply struct {
	Topic     Topic    `json:"topic"`
	Message   Message  `json:"message"`
	FollowUps []string `json:"followUps"`
}

type EmergencyNotice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	greeting   = "Olá! Como posso ajudar você e seu pet hoje?"
	disclaimer = "Este serviço não substitui uma consulta veterinária. Em casos de emergência, procure atendimento imediatamente."

	defaultReply = "Entendi sua preocupação. Para ajudar melhor, preciso de mais algumas informações."
	unknownQuick = "Entendi sua preocupação. Poderia fornecer mais detalhes para que eu possa ajudar melhor?"
)

var emergency = EmergencyNotice{
	Title:       "EMERGÊNCIA VETERINÁRIA",
	Description: "Este caso parece ser urgente. Procure atendimento veterinário IMEDIATAMENTE!",
}

var quickPrompts = []QuickPrompt{
	{
		Text:     "Meu pet está vomitando",
		Response: "Vômitos podem ser causados por diversos fatores. Com que frequência seu pet está vomitando? O vômito contém sangue ou é de alguma cor incomum?",
		Topic:    TopicVomit,
	},
	{
		Text:     "Meu pet não quer comer",
		Response: "A perda de apetite pode indicar diversos problemas. Há quanto tempo seu pet não se alimenta adequadamente? Notou outros sintomas como letargia, vômito ou diarreia?",
		Topic:    TopicAppetite,
	},
	{
		Text:     "Meu pet está com diarreia",
		Response: "Diarreia pode ser causada por mudanças na alimentação, estresse ou problemas de saúde. Há quanto tempo seu pet está com diarreia? A diarreia contém sangue ou muco?",
		Topic:    TopicDiarrhea,
	},
	{
		Text:     "Meu pet está coçando muito",
		Response: "Coceira excessiva pode indicar problemas dermatológicos, alergias ou parasitas. Você observou alguma área vermelha, lesão ou perda de pelo? Seu pet teve contato recente com outros animais?",
		Topic:    TopicItching,
	},
}

// topicRule: primera regla cuyo prefijo coincide con alguna palabra gana.
type topicRule struct {
	topic    Topic
	prefixes []string
	reply    string
}

var rules = []topicRule{
	{
		topic:    TopicVomit,
		prefixes: []string{"vomit", "vômit"},
		reply: "Vômitos podem indicar diversos problemas, desde indigestão simples até questões mais sérias. " +
			"É importante observar: Com que frequência está ocorrendo? Há presença de sangue ou coloração anormal? " +
			"Se os vômitos persistirem por mais de 24 horas, houver sangue ou seu pet parecer letárgico, recomendo consultar um veterinário urgentemente.",
	},
	{
		topic:    TopicAppetite,
		prefixes: []string{"come", "apetite", "appetite", "eat"},
		reply: "A perda de apetite pode ser sinal de diversos problemas. Se seu pet não come há mais de 24 horas, " +
			"isso pode ser preocupante, especialmente em gatos. Está bebendo água normalmente? Apresenta outros sintomas como " +
			"letargia ou dor? Recomendo monitorar nas próximas horas e, se não houver melhora, consultar um veterinário.",
	},
	{
		topic:    TopicDiarrhea,
		prefixes: []string{"diarreia", "diarréia", "fezes", "diarrhea", "stool"},
		reply: "Diarreia pode ser causada por diversos fatores, incluindo mudanças alimentares, estresse ou infecções. " +
			"Se persistir por mais de 48 horas, contiver sangue ou seu pet apresentar outros sintomas como vômito ou letargia, " +
			"é recomendável consultar um veterinário o quanto antes. Mantenha seu pet hidratado nesse período.",
	},
	{
		topic:    TopicItching,
		prefixes: []string{"coç", "coceira", "itch", "scratch"},
		reply: "Coceira excessiva pode indicar problemas dermatológicos, alergias ou presença de parasitas. " +
			"Examine a pele do seu pet procurando por vermelhidão, lesões ou parasitas visíveis. " +
			"Banhos com shampoo hipoalergênico podem ajudar temporariamente, mas se a coceira persistir, " +
			"um veterinário deve examinar para identificar a causa e prescrever o tratamento adequado.",
	},
}

var followUps = map[Topic][]string{
	TopicVomit: {
		"Com que frequência seu pet está vomitando?",
		"O vômito contém sangue ou é de alguma cor incomum?",
		"Seu pet consegue ingerir água sem vomitar?",
		"Você notou alguma mudança recente na alimentação ou rotina do seu pet?",
	},
	TopicAppetite: {
		"Há quanto tempo seu pet não está comendo normalmente?",
		"Seu pet ainda está bebendo água?",
		"Você notou alguma alteração no comportamento além da falta de apetite?",
		"Seu pet teve acesso a algum alimento diferente ou objeto que possa ter ingerido?",
	},
	TopicDiarrhea: {
		"Há quanto tempo seu pet está com diarreia?",
		"A diarreia contém sangue ou muco?",
		"Seu pet ainda está comendo e bebendo normalmente?",
		"Houve alguma mudança recente na alimentação do seu pet?",
	},
	TopicItching: {
		"Você observou alguma área vermelha, lesão ou perda de pelo?",
		"A coceira está localizada em alguma área específica ou é generalizada?",
		"Seu pet teve contato recente com outros animais?",
		"Você mudou recentemente o shampoo, ração ou outros produtos usados no pet?",
	},
}
