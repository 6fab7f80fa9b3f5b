package extract

import (
	"fmt"
	"time"

	"llm-trade-journal/internal/types"
)

const promptTemplate = `You are a trading data extractor for Indian stock markets.

Extract ALL available information from this message. If profit/loss is NOT mentioned, leave it as null - it will be calculated.

TODAY: %[1]s

MESSAGE: %[2]q

EXTRACTION RULES:
1. symbol: Stock/Index name in upper case without spaces (SUZLON, NIFTY, TATAMOTORS, BANKNIFTY)
2. instrument_type: "Equity", "Intraday", "Option", "Future", or "Swing"
   - If "CE"/"PE"/"call"/"put" -> Option
   - If "FUT"/"futures" -> Future
   - If "intraday" mentioned -> Intraday
   - If "swing" mentioned -> Swing
   - Default -> Equity
3. trade_direction:
   - "bought"/"buy"/"long" -> "Long"
   - "sold"/"sell"/"short" as the opening trade -> "Short"
   - Unknown -> "Unknown"
4. buy_price: Entry price per unit (number or null)
   - For Short trades this is the price the position was sold short at
5. sell_price: Exit price per unit (number or null)
   - For Short trades this is the price the position was covered at
6. quantity: Number of shares/lots (number or null)
7. capital_invested: Total amount invested (number or null)
8. profit_loss: ONLY if explicitly stated (e.g., "profit 2000", "loss 1500")
   - If NOT mentioned, return null
   - Profit = positive number
   - Loss = negative number
9. strategy: "Breakout", "VWAP", "Momentum", "Reversal", "News", or null
10. emotion: "FOMO", "Revenge", "Fear", "Greed", "Calm", "Disciplined", or null
11. notes: Anything else worth keeping, or null

Return ONLY this JSON (no extra text):
{
  "date": "%[1]s",
  "symbol": "EXAMPLE",
  "instrument_type": "Equity",
  "trade_direction": "Long",
  "buy_price": 100.0,
  "sell_price": 110.0,
  "quantity": 100,
  "capital_invested": 10000,
  "profit_loss": null,
  "strategy": null,
  "emotion": null,
  "notes": null
}`

// BuildPrompt embeds the raw message and today's date into the extraction prompt.
func BuildPrompt(rawMessage string, today time.Time) string {
	return fmt.Sprintf(promptTemplate, today.Format(types.DateLayout), rawMessage)
}
