package services

import (
	"fmt"
	"strings"
)

// The section headers below are load-bearing: the markdown post-processor
// in utils recognizes exactly these shapes. Keep the two templates in
// sync when changing either.

// AnalysisPrompt builds the full three-timeframe instruction for a
// symbol's chart screenshots.
func AnalysisPrompt(symbol string) string {
	symbol = strings.ToUpper(symbol)
	return fmt.Sprintf(`You are an expert technical analyst. Analyze the attached chart screenshots of %s across the 1 hour, 4 hour and daily timeframes.

Respond in markdown using exactly this structure:

## 1hr Timeframe
- **Trend:** the prevailing trend and momentum
- **Key Levels:** nearby support and resistance with price values
- **Action:** what a trader should watch for on this timeframe

## 4hr Timeframe
- **Trend:** the prevailing trend and momentum
- **Key Levels:** nearby support and resistance with price values
- **Action:** what a trader should watch for on this timeframe

## 1d Timeframe
- **Trend:** the prevailing trend and momentum
- **Key Levels:** nearby support and resistance with price values
- **Action:** what a trader should watch for on this timeframe

### Summary
A short synthesis of the three timeframes.

### Overall Outlook
One of: Bullish, Bearish or Neutral, with a one-sentence justification.

Base every statement on what is visible in the charts. Do not invent price levels.`, symbol)
}

// SingleTimeframePrompt builds the short variant used when only one
// timeframe was captured.
func SingleTimeframePrompt(symbol, interval string) string {
	symbol = strings.ToUpper(symbol)
	return fmt.Sprintf(`You are an expert technical analyst. Analyze the attached %s chart screenshot of %s.

Respond in markdown using exactly this structure:

## %s Timeframe
- **Trend:** the prevailing trend and momentum
- **Key Levels:** nearby support and resistance with price values
- **Action:** what a trader should watch for on this timeframe

### Summary
A short synthesis of the chart.

Base every statement on what is visible in the chart. Do not invent price levels.`, interval, symbol, interval)
}
