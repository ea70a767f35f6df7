package bot

// Intent display names as configured in the Dialogflow agent.
const (
	IntentOrderStatus   = "Consulta de Status de Pedido"
	IntentProductPrice  = "Consulta de Preço"
	IntentFeatures      = "Consulta de Funcionalidades"
	IntentPaymentTerms  = "Formas de Pagamento"
	IntentSupportTicket = "Abertura de Ticket de Suporte"
	IntentHumanHandoff  = "Falar com Atendente"
)

// ClaimActionID identifies the claim button on the broadcast prompt.
const ClaimActionID = "atender_cliente"

// RelayMarker prefixes messages the service itself posts into a handoff
// channel, so the events callback can tell them apart from agent messages.
const RelayMarker = "👤"

const (
	msgFallback       = "Estou aqui para ajudar com consultas de pedidos, preços e funcionalidades. Como posso ajudar?"
	msgApologetic     = "Desculpe, estamos com um problema técnico no momento. Tente novamente em instantes."
	msgNoOrders       = "Não encontramos nenhum pedido em seu nome."
	msgPaymentTerms   = "Aceitamos cartão de crédito, boleto bancário e Pix. Compras no cartão podem ser parceladas em até 12 vezes."
	msgWaitForAgent   = "Certo! Já estou chamando um atendente. Aguarde um momento que logo alguém falará com você."
	msgStillInQueue   = "Você já está na fila de atendimento. Aguarde um momento, por favor."
	msgDescribeTicket = "Por favor, descreva o problema que você está enfrentando."
	msgHandoffClosed  = "O atendimento foi encerrado. Se precisar de algo mais, é só chamar!"
	msgNothingToClose = "Você não possui nenhum atendimento ativo para encerrar."
	msgNoArguments    = "O comando /encerrar não aceita argumentos."
	msgClosedForAgent = "✅ Atendimento encerrado. O canal foi arquivado."
)
