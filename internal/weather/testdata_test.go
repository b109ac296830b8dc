package weather

const samplePayload = `{
  "data": {
    "current_condition": [{
      "temp_C": "20",
      "temp_F": "68",
      "FeelsLikeC": "19",
      "humidity": "50",
      "windspeedMiles": "10",
      "winddir16Point": "NW",
      "uvIndex": "3",
      "visibility": "10",
      "weatherDesc": [{"value": "Sunny"}]
    }],
    "weather": [{
      "date": "2024-01-01",
      "maxtempC": "22",
      "mintempC": "15",
      "hourly": [{
        "weatherDesc": [{"value": "Sunny"}],
        "chanceofrain": "0"
      }]
    }],
    "nearest_area": [{
      "areaName": [{"value": "Paris"}],
      "country": [{"value": "France"}]
    }]
  }
}`
