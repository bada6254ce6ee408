package extraction

// slipScanPrompt is the shared instruction used by all LLM providers
// for reading a photo of two ATM reconciliation slips.
const slipScanPrompt = `You are analyzing an image of two ATM reconciliation slips placed side by side. Carefully read all text on each slip and extract the following for each slip separately:

1. **ATM Number**: The machine identifier, usually printed before the branch name.

2. **Branch**: The branch name printed on the slip.

3. **Date and Time**: The date and, if printed, the time the slip was produced. Extract them as two separate fields. If no time is printed, use null for the time.

4. **Denominations and END values**: Each counter line pairs a note face value with its END counter reading, e.g. "500.00 - END: 879". Extract every such line.

Return ONLY valid JSON in this exact format:
{
  "slip_1": {
    "atm_number": "...",
    "branch": "...",
    "date": "...",
    "time": "...",
    "denominations": [
      {"denomination": 500, "end": 879}
    ]
  },
  "slip_2": {
    "atm_number": "...",
    "branch": "...",
    "date": "...",
    "time": "...",
    "denominations": [
      {"denomination": 500, "end": 879}
    ]
  }
}

Important:
- The left slip is slip_1 and the right slip is slip_2
- denomination and end must be numbers (not strings)
- Include one denominations entry per counter line on the slip
- If a field is not present on a slip, use null for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`
